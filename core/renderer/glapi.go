package renderer

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	glm "github.com/go-gl/mathgl/mgl32"
)

// NewGL loads the GL function pointers of the current context
// and returns the driver backed GL
func NewGL() (GL, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	return driver{}, nil
}

// driver implements GL with go-gl
type driver struct{}

func (driver) CreateShader(xtype uint32) uint32 {
	return gl.CreateShader(xtype)
}

func (driver) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, csources, nil)
}

func (driver) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (driver) GetShaderiv(shader uint32, pname uint32) int32 {
	var value int32
	gl.GetShaderiv(shader, pname, &value)
	return value
}

func (d driver) GetShaderInfoLog(shader uint32) string {
	length := d.GetShaderiv(shader, gl.INFO_LOG_LENGTH)
	if length == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(length+1))
	gl.GetShaderInfoLog(shader, length, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (driver) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (driver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (driver) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (driver) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (driver) GetProgramiv(program uint32, pname uint32) int32 {
	var value int32
	gl.GetProgramiv(program, pname, &value)
	return value
}

func (d driver) GetProgramInfoLog(program uint32) string {
	length := d.GetProgramiv(program, gl.INFO_LOG_LENGTH)
	if length == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(length+1))
	gl.GetProgramInfoLog(program, length, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (driver) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (driver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (driver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (driver) UniformMatrix4fv(location int32, value glm.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &value[0])
}

func (driver) Uniform3f(location int32, value glm.Vec3) {
	gl.Uniform3f(location, value[0], value[1], value[2])
}

func (driver) Uniform1i(location int32, value int32) {
	gl.Uniform1i(location, value)
}

func (driver) GenVertexArray() uint32 {
	var array uint32
	gl.GenVertexArrays(1, &array)
	return array
}

func (driver) BindVertexArray(array uint32) {
	gl.BindVertexArray(array)
}

func (driver) DeleteVertexArray(array uint32) {
	gl.DeleteVertexArrays(1, &array)
}

func (driver) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (driver) VertexAttribPointer(index uint32, size int32, xtype uint32, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, false, stride, offset)
}

func (driver) GenBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (driver) BindBuffer(target, buffer uint32) {
	gl.BindBuffer(target, buffer)
}

func (driver) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	gl.BufferData(target, size, data, usage)
}

func (driver) GetBufferParameteriv(target, pname uint32) int32 {
	var value int32
	gl.GetBufferParameteriv(target, pname, &value)
	return value
}

func (driver) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (driver) GenTexture() uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	return texture
}

func (driver) ActiveTexture(texture uint32) {
	gl.ActiveTexture(texture)
}

func (driver) BindTexture(target, texture uint32) {
	gl.BindTexture(target, texture)
}

func (driver) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (driver) TexImage2D(target uint32, width, height int32, pixels []uint8) {
	gl.TexImage2D(target, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
}

func (driver) GenerateMipmap(target uint32) {
	gl.GenerateMipmap(target)
}

func (driver) DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}

func (driver) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (driver) ClearColor(red, green, blue, alpha float32) {
	gl.ClearColor(red, green, blue, alpha)
}

func (driver) Clear(mask uint32) {
	gl.Clear(mask)
}

func (driver) Enable(capability uint32) {
	gl.Enable(capability)
}

func (driver) DrawElements(mode uint32, count int32, xtype uint32) {
	gl.DrawElements(mode, count, xtype, nil)
}

func (driver) GetError() uint32 {
	return gl.GetError()
}

func (driver) GetString(name uint32) string {
	return gl.GoStr(gl.GetString(name))
}
