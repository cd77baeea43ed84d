package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/devblok/koruview/model"
)

const indexSize = int(unsafe.Sizeof(uint32(0)))

// uploadMesh creates a vertex array with one interleaved vertex buffer
// and one index buffer. The attribute layout is model.VertexAttributes.
func uploadMesh(api GL, mesh *model.Mesh) (*VertexArray, error) {
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return nil, errors.New("upload mesh: no geometry")
	}

	va := &VertexArray{
		api:   api,
		count: int32(len(mesh.Indices)),
	}
	if va.array = api.GenVertexArray(); va.array == 0 {
		return nil, fmt.Errorf("gl.GenVertexArrays(): %w", ErrNoObject)
	}
	api.BindVertexArray(va.array)

	if va.vertices = api.GenBuffer(); va.vertices == 0 {
		va.Release()
		return nil, fmt.Errorf("gl.GenBuffers(): vertex buffer: %w", ErrNoObject)
	}
	api.BindBuffer(gl.ARRAY_BUFFER, va.vertices)
	api.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(model.VertexStride), unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	if va.indices = api.GenBuffer(); va.indices == 0 {
		va.Release()
		return nil, fmt.Errorf("gl.GenBuffers(): index buffer: %w", ErrNoObject)
	}
	api.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, va.indices)
	api.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*indexSize, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	for _, attr := range model.VertexAttributes() {
		api.EnableVertexAttribArray(attr.Location)
		api.VertexAttribPointer(attr.Location, attr.Components, gl.FLOAT, model.VertexStride, attr.Offset)
	}
	api.BindVertexArray(0)

	if err := checkError(api, "upload mesh"); err != nil {
		va.Release()
		return nil, err
	}
	return va, nil
}

// VertexArray is an uploaded mesh
type VertexArray struct {
	api GL

	array    uint32
	vertices uint32
	indices  uint32
	count    int32
}

// Get returns the GL vertex array name
func (v *VertexArray) Get() uint32 {
	return v.array
}

// Count is the number of indices drawn
func (v *VertexArray) Count() int32 {
	return v.count
}

// IndexBufferLength reads back the size of the index buffer
// from the driver, in indices
func (v *VertexArray) IndexBufferLength() (int, error) {
	v.api.BindVertexArray(v.array)
	size := v.api.GetBufferParameteriv(gl.ELEMENT_ARRAY_BUFFER, gl.BUFFER_SIZE)
	v.api.BindVertexArray(0)
	if err := checkError(v.api, "gl.GetBufferParameteriv()"); err != nil {
		return 0, err
	}
	return int(size) / indexSize, nil
}

// Release deletes the vertex array and its buffers
func (v *VertexArray) Release() {
	if v.indices != 0 {
		v.api.DeleteBuffer(v.indices)
		v.indices = 0
	}
	if v.vertices != 0 {
		v.api.DeleteBuffer(v.vertices)
		v.vertices = 0
	}
	if v.array != 0 {
		v.api.DeleteVertexArray(v.array)
		v.array = 0
	}
}
