package model

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/g3n/engine/loader/obj"
)

// Object import errors
var (
	ErrEmptyObject = errors.New("object has no faces")
	ErrIndexRange  = errors.New("face references a missing vertex")
)

// corner is one face corner, -1 marks an absent normal or texture coordinate
type corner struct {
	position, uv, normal int
}

// ImportObject reads the given OBJ file contents and converts them
// to a single-indexed Mesh. Polygons are triangulated as fans and corners
// with the same position, texture coordinate and normal share one vertex.
// Normals and texture coordinates absent from the source are zero.
func ImportObject(fileContents []byte) (*Mesh, error) {
	dec, err := obj.DecodeReader(bytes.NewReader(fileContents), nil)
	if err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}

	var (
		mesh Mesh
		seen = make(map[corner]uint32)
	)
	for _, object := range dec.Objects {
		for f, face := range object.Faces {
			if len(face.Vertices) < 3 {
				continue
			}
			corners := make([]corner, len(face.Vertices))
			for i := range face.Vertices {
				c, err := faceCorner(dec, face, i)
				if err != nil {
					return nil, fmt.Errorf("object %s face %d: %w", object.Name, f, err)
				}
				corners[i] = c
			}

			for i := 1; i < len(corners)-1; i++ {
				for _, c := range [3]corner{corners[0], corners[i], corners[i+1]} {
					idx, ok := seen[c]
					if !ok {
						idx = uint32(len(mesh.Vertices))
						seen[c] = idx
						mesh.Vertices = append(mesh.Vertices, makeVertex(dec, c))
					}
					mesh.Indices = append(mesh.Indices, idx)
				}
			}
		}
	}

	if len(mesh.Indices) == 0 {
		return nil, ErrEmptyObject
	}
	return &mesh, nil
}

// faceCorner validates the i-th corner of a face. Normal and texture
// coordinate indices outside of the decoded data count as absent.
func faceCorner(dec *obj.Decoder, face obj.Face, i int) (corner, error) {
	c := corner{position: face.Vertices[i], uv: -1, normal: -1}
	if c.position < 0 || 3*c.position+3 > len(dec.Vertices) {
		return corner{}, fmt.Errorf("%w: %d", ErrIndexRange, c.position+1)
	}
	if i < len(face.Uvs) && inRange(face.Uvs[i], 2, len(dec.Uvs)) {
		c.uv = face.Uvs[i]
	}
	if i < len(face.Normals) && inRange(face.Normals[i], 3, len(dec.Normals)) {
		c.normal = face.Normals[i]
	}
	return c, nil
}

func inRange(idx, components, length int) bool {
	return idx >= 0 && components*idx+components <= length
}

func makeVertex(dec *obj.Decoder, c corner) Vertex {
	var vert Vertex
	copy(vert.Pos[:], dec.Vertices[3*c.position:])
	if c.normal >= 0 {
		copy(vert.Normal[:], dec.Normals[3*c.normal:])
	}
	if c.uv >= 0 {
		copy(vert.UV[:], dec.Uvs[2*c.uv:])
	}
	return vert
}
