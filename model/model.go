package model

import (
	"unsafe"

	glm "github.com/go-gl/mathgl/mgl32"
)

// Vertex is an interleaved model vertex. Its field order and
// sizes are mirrored by VertexAttributes and by the vertex shader
// input locations, so they cannot change independently.
type Vertex struct {
	Pos    glm.Vec3
	Normal glm.Vec3
	UV     glm.Vec2
}

// VertexStride is the size of one interleaved Vertex in bytes
const VertexStride = int32(unsafe.Sizeof(Vertex{}))

// VertexAttribute describes one shader input sourced from a Vertex
type VertexAttribute struct {
	Location   uint32
	Components int32
	Offset     uintptr
}

// VertexAttributes returns the attribute layout of Vertex,
// locations 0 (position), 1 (normal) and 2 (texture coordinate)
func VertexAttributes() []VertexAttribute {
	return []VertexAttribute{
		{
			Location:   0,
			Components: 3,
			Offset:     unsafe.Offsetof(Vertex{}.Pos),
		},
		{
			Location:   1,
			Components: 3,
			Offset:     unsafe.Offsetof(Vertex{}.Normal),
		},
		{
			Location:   2,
			Components: 2,
			Offset:     unsafe.Offsetof(Vertex{}.UV),
		},
	}
}

// Mesh is single-indexed triangle list geometry.
// It is built once at load time and not modified afterwards.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles in the index list
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Texture is RGBA8 pixel data with the bottom row first,
// which is the origin convention of OpenGL
type Texture struct {
	Width  int
	Height int
	Pix    []uint8
}

// TextureKind identifies one of the maps of a material.
// Its value is also the texture unit the map is bound to.
type TextureKind int

// Material maps, in binding order
const (
	AlbedoMap TextureKind = iota
	AmbientOcclusionMap
	MetallicRoughnessMap
	NormalMap
	TextureKindCount
)

// String returns the sampler uniform name of the map
func (k TextureKind) String() string {
	switch k {
	case AlbedoMap:
		return "albedoMap"
	case AmbientOcclusionMap:
		return "aoMap"
	case MetallicRoughnessMap:
		return "metallicMap"
	case NormalMap:
		return "normalMap"
	}
	return "unknownMap"
}

// Uniform holds the per-frame shader inputs
type Uniform struct {
	Model      glm.Mat4
	View       glm.Mat4
	Projection glm.Mat4
	CameraPos  glm.Vec3
	CameraDir  glm.Vec3
}
