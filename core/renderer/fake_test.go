package renderer

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	glm "github.com/go-gl/mathgl/mgl32"
)

// fakeGL records what the renderer asks of the driver. Object names
// are handed out from one counter, so every live object is unique.
type fakeGL struct {
	calls []string

	next uint32
	live map[uint32]string

	failCompile uint32
	failLink    bool
	infoLog     string
	noObjects   bool
	missing     string
	queued      []uint32

	shaderTypes map[uint32]uint32
	attached    map[uint32][]uint32

	vertexArray uint32
	buffers     map[uint32]uint32
	bufferSizes map[uint32]int
	elements    map[uint32]uint32
	attributes  []attribute
	enabled     map[uint32]bool

	activeUnit uint32
	units      [16]uint32
	texture    uint32
	texParams  map[uint32]map[uint32]int32
	texSizes   map[uint32][2]int32
	mipmapped  map[uint32]bool

	samplers  map[int32]int32
	matrices  map[int32]glm.Mat4
	vectors   map[int32]glm.Vec3
	locations map[string]int32

	viewport     [4]int32
	capabilities map[uint32]bool
	clearMask    uint32

	draws []drawCall
}

type attribute struct {
	Index  uint32
	Size   int32
	Type   uint32
	Stride int32
	Offset uintptr
}

type drawCall struct {
	vertexArray uint32
	count       int32
	units       [4]uint32
	model       glm.Mat4
}

func newFakeGL() *fakeGL {
	return &fakeGL{
		live:         make(map[uint32]string),
		shaderTypes:  make(map[uint32]uint32),
		attached:     make(map[uint32][]uint32),
		buffers:      make(map[uint32]uint32),
		bufferSizes:  make(map[uint32]int),
		elements:     make(map[uint32]uint32),
		enabled:      make(map[uint32]bool),
		texParams:    make(map[uint32]map[uint32]int32),
		texSizes:     make(map[uint32][2]int32),
		mipmapped:    make(map[uint32]bool),
		samplers:     make(map[int32]int32),
		matrices:     make(map[int32]glm.Mat4),
		vectors:      make(map[int32]glm.Vec3),
		locations:    make(map[string]int32),
		capabilities: make(map[uint32]bool),
	}
}

func (f *fakeGL) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeGL) create(kind string) uint32 {
	if f.noObjects {
		return 0
	}
	f.next++
	f.live[f.next] = kind
	return f.next
}

func (f *fakeGL) destroy(id uint32) {
	delete(f.live, id)
}

// liveObjects counts live objects of a kind
func (f *fakeGL) liveObjects(kind string) int {
	var count int
	for _, k := range f.live {
		if k == kind {
			count++
		}
	}
	return count
}

func (f *fakeGL) callCount(call string) int {
	var count int
	for _, c := range f.calls {
		if c == call {
			count++
		}
	}
	return count
}

func (f *fakeGL) CreateShader(xtype uint32) uint32 {
	f.record("CreateShader")
	id := f.create("shader")
	f.shaderTypes[id] = xtype
	return id
}

func (f *fakeGL) ShaderSource(shader uint32, source string) { f.record("ShaderSource") }

func (f *fakeGL) CompileShader(shader uint32) { f.record("CompileShader") }

func (f *fakeGL) GetShaderiv(shader uint32, pname uint32) int32 {
	if pname == gl.COMPILE_STATUS && f.shaderTypes[shader] == f.failCompile {
		return gl.FALSE
	}
	return gl.TRUE
}

func (f *fakeGL) GetShaderInfoLog(shader uint32) string { return f.infoLog }

func (f *fakeGL) DeleteShader(shader uint32) {
	f.record("DeleteShader")
	f.destroy(shader)
}

func (f *fakeGL) CreateProgram() uint32 {
	f.record("CreateProgram")
	return f.create("program")
}

func (f *fakeGL) AttachShader(program, shader uint32) {
	f.attached[program] = append(f.attached[program], shader)
}

func (f *fakeGL) LinkProgram(program uint32) { f.record("LinkProgram") }

func (f *fakeGL) GetProgramiv(program uint32, pname uint32) int32 {
	if pname == gl.LINK_STATUS && f.failLink {
		return gl.FALSE
	}
	return gl.TRUE
}

func (f *fakeGL) GetProgramInfoLog(program uint32) string { return f.infoLog }

func (f *fakeGL) UseProgram(program uint32) { f.record("UseProgram") }

func (f *fakeGL) DeleteProgram(program uint32) {
	f.record("DeleteProgram")
	f.destroy(program)
}

func (f *fakeGL) GetUniformLocation(program uint32, name string) int32 {
	f.record("GetUniformLocation")
	if name == f.missing {
		return -1
	}
	if location, ok := f.locations[name]; ok {
		return location
	}
	location := int32(len(f.locations))
	f.locations[name] = location
	return location
}

func (f *fakeGL) UniformMatrix4fv(location int32, value glm.Mat4) {
	f.matrices[location] = value
}

func (f *fakeGL) Uniform3f(location int32, value glm.Vec3) {
	f.vectors[location] = value
}

func (f *fakeGL) Uniform1i(location int32, value int32) {
	f.samplers[location] = value
}

func (f *fakeGL) GenVertexArray() uint32 {
	return f.create("vertexArray")
}

func (f *fakeGL) BindVertexArray(array uint32) {
	f.vertexArray = array
}

func (f *fakeGL) DeleteVertexArray(array uint32) {
	f.destroy(array)
}

func (f *fakeGL) EnableVertexAttribArray(index uint32) {
	f.enabled[index] = true
}

func (f *fakeGL) VertexAttribPointer(index uint32, size int32, xtype uint32, stride int32, offset uintptr) {
	f.attributes = append(f.attributes, attribute{index, size, xtype, stride, offset})
}

func (f *fakeGL) GenBuffer() uint32 {
	return f.create("buffer")
}

func (f *fakeGL) BindBuffer(target, buffer uint32) {
	f.buffers[target] = buffer
	if target == gl.ELEMENT_ARRAY_BUFFER && f.vertexArray != 0 {
		f.elements[f.vertexArray] = buffer
	}
}

func (f *fakeGL) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	f.record("BufferData")
	if usage != gl.STATIC_DRAW || data == nil {
		f.queued = append(f.queued, gl.INVALID_VALUE)
	}
	f.bufferSizes[f.buffers[target]] = size
}

func (f *fakeGL) GetBufferParameteriv(target, pname uint32) int32 {
	if target == gl.ELEMENT_ARRAY_BUFFER && pname == gl.BUFFER_SIZE {
		return int32(f.bufferSizes[f.elements[f.vertexArray]])
	}
	f.queued = append(f.queued, gl.INVALID_ENUM)
	return 0
}

func (f *fakeGL) DeleteBuffer(buffer uint32) {
	f.destroy(buffer)
}

func (f *fakeGL) GenTexture() uint32 {
	return f.create("texture")
}

func (f *fakeGL) ActiveTexture(texture uint32) {
	f.activeUnit = texture - gl.TEXTURE0
}

func (f *fakeGL) BindTexture(target, texture uint32) {
	f.record("BindTexture")
	f.texture = texture
	f.units[f.activeUnit] = texture
}

func (f *fakeGL) TexParameteri(target, pname uint32, param int32) {
	if f.texParams[f.texture] == nil {
		f.texParams[f.texture] = make(map[uint32]int32)
	}
	f.texParams[f.texture][pname] = param
}

func (f *fakeGL) TexImage2D(target uint32, width, height int32, pixels []uint8) {
	f.texSizes[f.texture] = [2]int32{width, height}
}

func (f *fakeGL) GenerateMipmap(target uint32) {
	if _, ok := f.texSizes[f.texture]; !ok {
		f.queued = append(f.queued, gl.INVALID_OPERATION)
	}
	f.mipmapped[f.texture] = true
}

func (f *fakeGL) DeleteTexture(texture uint32) {
	f.destroy(texture)
}

func (f *fakeGL) Viewport(x, y, width, height int32) {
	f.viewport = [4]int32{x, y, width, height}
}

func (f *fakeGL) ClearColor(red, green, blue, alpha float32) {}

func (f *fakeGL) Clear(mask uint32) {
	f.record("Clear")
	f.clearMask = mask
}

func (f *fakeGL) Enable(capability uint32) {
	f.record("Enable")
	f.capabilities[capability] = true
}

func (f *fakeGL) DrawElements(mode uint32, count int32, xtype uint32) {
	f.record("DrawElements")
	if mode != gl.TRIANGLES || xtype != gl.UNSIGNED_INT {
		f.queued = append(f.queued, gl.INVALID_ENUM)
	}
	var units [4]uint32
	copy(units[:], f.units[:4])
	f.draws = append(f.draws, drawCall{
		vertexArray: f.vertexArray,
		count:       count,
		units:       units,
		model:       f.matrices[f.locations[modelUniform]],
	})
}

func (f *fakeGL) GetError() uint32 {
	if len(f.queued) == 0 {
		return gl.NO_ERROR
	}
	code := f.queued[0]
	f.queued = f.queued[1:]
	return code
}

func (f *fakeGL) GetString(name uint32) string { return "fake" }

// fakeSurface counts presented frames
type fakeSurface struct {
	swaps int
	fail  bool
}

var errSurfaceLost = errors.New("surface lost")

func (s *fakeSurface) Swap() error {
	if s.fail {
		return errSurfaceLost
	}
	s.swaps++
	return nil
}
