// Package renderer draws the loaded scene with an OpenGL 4.1 core context.
//
// All GL calls go through the GL interface. NewGL binds it to the
// loaded driver, which must be current on the calling thread.
package renderer

import (
	"fmt"
	"unsafe"

	glm "github.com/go-gl/mathgl/mgl32"
)

// GL is the part of the OpenGL API the renderer uses. Methods mirror
// their gl* counterparts, with out-parameters turned into results.
type GL interface {
	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	GetUniformLocation(program uint32, name string) int32
	UniformMatrix4fv(location int32, value glm.Mat4)
	Uniform3f(location int32, value glm.Vec3)
	Uniform1i(location int32, value int32)

	GenVertexArray() uint32
	BindVertexArray(array uint32)
	DeleteVertexArray(array uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, stride int32, offset uintptr)

	GenBuffer() uint32
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)
	GetBufferParameteriv(target, pname uint32) int32
	DeleteBuffer(buffer uint32)

	GenTexture() uint32
	ActiveTexture(texture uint32)
	BindTexture(target, texture uint32)
	TexParameteri(target, pname uint32, param int32)
	TexImage2D(target uint32, width, height int32, pixels []uint8)
	GenerateMipmap(target uint32)
	DeleteTexture(texture uint32)

	Viewport(x, y, width, height int32)
	ClearColor(red, green, blue, alpha float32)
	Clear(mask uint32)
	Enable(capability uint32)
	DrawElements(mode uint32, count int32, xtype uint32)

	GetError() uint32
	GetString(name uint32) string
}

// GLError is a non-zero glGetError code
type GLError struct {
	Call string
	Code uint32
}

// Error implements error
func (e GLError) Error() string {
	return fmt.Sprintf("%s: %s (0x%04x)", e.Call, errorName(e.Code), e.Code)
}

func errorName(code uint32) string {
	switch code {
	case 0x0500:
		return "GL_INVALID_ENUM"
	case 0x0501:
		return "GL_INVALID_VALUE"
	case 0x0502:
		return "GL_INVALID_OPERATION"
	case 0x0505:
		return "GL_OUT_OF_MEMORY"
	case 0x0506:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	}
	return "GL error"
}

// checkError drains the GL error queue and reports the first error
func checkError(api GL, call string) error {
	var first uint32
	for code := api.GetError(); code != 0; code = api.GetError() {
		if first == 0 {
			first = code
		}
	}
	if first != 0 {
		return GLError{Call: call, Code: first}
	}
	return nil
}
