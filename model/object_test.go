package model_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unsafe"

	qt "github.com/frankban/quicktest"
	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/koruview/model"
)

const quad = `
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestVertexLayout(t *testing.T) {
	c := qt.New(t)
	c.Assert(model.VertexStride, qt.Equals, int32(8*unsafe.Sizeof(float32(0))))

	attrs := model.VertexAttributes()
	c.Assert(attrs, qt.HasLen, 3)
	for idx, want := range []struct {
		components int32
		offset     uintptr
	}{{3, 0}, {3, 12}, {2, 24}} {
		c.Assert(attrs[idx].Location, qt.Equals, uint32(idx))
		c.Assert(attrs[idx].Components, qt.Equals, want.components)
		c.Assert(attrs[idx].Offset, qt.Equals, want.offset)
	}
}

func TestImportQuad(t *testing.T) {
	c := qt.New(t)
	mesh, err := model.ImportObject([]byte(quad))
	c.Assert(err, qt.IsNil)

	c.Assert(mesh.Vertices, qt.HasLen, 4)
	c.Assert(mesh.Indices, qt.DeepEquals, []uint32{0, 1, 2, 0, 2, 3})
	c.Assert(mesh.TriangleCount(), qt.Equals, 2)
	c.Assert(mesh.Vertices[2], qt.Equals, model.Vertex{
		Pos:    glm.Vec3{1, 1, 0},
		Normal: glm.Vec3{0, 0, 1},
		UV:     glm.Vec2{1, 1},
	})
}

func TestImportZeroFill(t *testing.T) {
	c := qt.New(t)
	data := `
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
vt 0.25 0.75
vn 0 1 0
f 1 2 3
f 2/1/1 4/1/1 3/1/1
`
	mesh, err := model.ImportObject([]byte(data))
	c.Assert(err, qt.IsNil)
	c.Assert(mesh.Vertices, qt.HasLen, 6)

	for _, v := range mesh.Vertices[:3] {
		c.Assert(v.Normal, qt.Equals, glm.Vec3{})
		c.Assert(v.UV, qt.Equals, glm.Vec2{})
	}
	for _, v := range mesh.Vertices[3:] {
		c.Assert(v.Normal, qt.Equals, glm.Vec3{0, 1, 0})
		c.Assert(v.UV, qt.Equals, glm.Vec2{0.25, 0.75})
	}
}

func TestImportIndicesInRange(t *testing.T) {
	c := qt.New(t)
	mesh, err := model.ImportObject([]byte(grid(12)))
	c.Assert(err, qt.IsNil)

	c.Assert(len(mesh.Indices)%3, qt.Equals, 0)
	c.Assert(mesh.Vertices, qt.HasLen, 13*13)
	referenced := make(map[uint32]bool)
	for _, idx := range mesh.Indices {
		if int(idx) >= len(mesh.Vertices) {
			t.Fatalf("index %d out of %d vertices", idx, len(mesh.Vertices))
		}
		referenced[idx] = true
	}
	c.Assert(referenced, qt.HasLen, len(mesh.Vertices))
}

func TestImportErrors(t *testing.T) {
	c := qt.New(t)
	_, err := model.ImportObject([]byte("v 0 0 0\n"))
	c.Assert(errors.Is(err, model.ErrEmptyObject), qt.Equals, true)

	_, err = model.ImportObject([]byte("v 0 0 0\nf 1 2 3\n"))
	c.Assert(errors.Is(err, model.ErrIndexRange), qt.Equals, true)
	c.Assert(err, qt.ErrorMatches, "object .* face 0: face references a missing vertex: 2")

	_, err = model.ImportObject([]byte("v 0 0 0\nf 1 x 1\n"))
	c.Assert(err, qt.ErrorMatches, "obj: .*")
}

func TestImportPolygonFan(t *testing.T) {
	c := qt.New(t)
	data := `
o Hexagon
v 1 0 0
v 0.5 0.86 0
v -0.5 0.86 0
v -1 0 0
v -0.5 -0.86 0
v 0.5 -0.86 0
vn 0 0 1
f 1//1 2//1 3//1 4//1 5//1 6//1
`
	mesh, err := model.ImportObject([]byte(data))
	c.Assert(err, qt.IsNil)
	c.Assert(mesh.Vertices, qt.HasLen, 6)
	c.Assert(mesh.Indices, qt.DeepEquals, []uint32{0, 1, 2, 0, 2, 3, 0, 3, 4, 0, 4, 5})
	for _, v := range mesh.Vertices {
		c.Assert(v.Normal, qt.Equals, glm.Vec3{0, 0, 1})
		c.Assert(v.UV, qt.Equals, glm.Vec2{})
	}
}

func TestImportObjectsShareVertices(t *testing.T) {
	c := qt.New(t)
	data := `
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
o First
f 1 2 3
o Second
f 2 4 3
`
	mesh, err := model.ImportObject([]byte(data))
	c.Assert(err, qt.IsNil)
	c.Assert(mesh.Vertices, qt.HasLen, 4)
	c.Assert(mesh.Indices, qt.DeepEquals, []uint32{0, 1, 2, 1, 3, 2})
}

func TestTextureKinds(t *testing.T) {
	c := qt.New(t)
	c.Assert(int(model.TextureKindCount), qt.Equals, 4)
	names := []string{"albedoMap", "aoMap", "metallicMap", "normalMap"}
	for k := model.AlbedoMap; k < model.TextureKindCount; k++ {
		c.Assert(k.String(), qt.Equals, names[k])
	}
}

func BenchmarkImportObjectSmall(b *testing.B) {
	data := []byte(grid(8))
	for idx := 0; idx < b.N; idx++ {
		model.ImportObject(data)
	}
}

func BenchmarkImportObjectBig(b *testing.B) {
	data := []byte(grid(256))
	for idx := 0; idx < b.N; idx++ {
		model.ImportObject(data)
	}
}

// grid generates a planar n by n quad grid with shared corners
func grid(n int) string {
	var sb strings.Builder
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			fmt.Fprintf(&sb, "v %d %d 0\n", x, y)
		}
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			a := y*(n+1) + x + 1
			fmt.Fprintf(&sb, "f %d %d %d %d\n", a, a+1, a+n+2, a+n+1)
		}
	}
	return sb.String()
}
