package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/devblok/koruview/core"
)

// ErrNoObject is returned when the driver hands out a zero object name
var ErrNoObject = errors.New("GL object creation failed")

// ShaderError carries the compiler or linker log of a failed build
type ShaderError struct {
	// Stage that failed to compile, UnknownShaderStage when linking failed
	Stage core.ShaderStage
	Log   string
}

// Error implements error
func (e *ShaderError) Error() string {
	if e.Stage == core.UnknownShaderStage {
		return "program link failed:\n" + e.Log
	}
	return fmt.Sprintf("%s shader compile failed:\n%s", e.Stage, e.Log)
}

func shaderType(stage core.ShaderStage) (uint32, error) {
	switch stage {
	case core.VertexShaderStage:
		return gl.VERTEX_SHADER, nil
	case core.FragmentShaderStage:
		return gl.FRAGMENT_SHADER, nil
	}
	return 0, fmt.Errorf("no GL shader type for %s stage", stage)
}

// compileShader compiles a single shader stage. On failure the
// shader is deleted and the compiler log returned as *ShaderError.
func compileShader(api GL, stage core.ShaderStage, source string) (uint32, error) {
	xtype, err := shaderType(stage)
	if err != nil {
		return 0, err
	}

	shader := api.CreateShader(xtype)
	if shader == 0 {
		return 0, fmt.Errorf("gl.CreateShader(%s): %w", stage, ErrNoObject)
	}

	api.ShaderSource(shader, source)
	api.CompileShader(shader)

	if api.GetShaderiv(shader, gl.COMPILE_STATUS) == gl.FALSE {
		log := api.GetShaderInfoLog(shader)
		api.DeleteShader(shader)
		return 0, &ShaderError{Stage: stage, Log: log}
	}
	return shader, nil
}

// linkProgram compiles both stages and links them. The stage
// objects are deleted once the program is linked.
func linkProgram(api GL, sources core.ShaderSources) (*Program, error) {
	vertex, err := compileShader(api, core.VertexShaderStage, sources.Vertex)
	if err != nil {
		return nil, err
	}
	defer api.DeleteShader(vertex)

	fragment, err := compileShader(api, core.FragmentShaderStage, sources.Fragment)
	if err != nil {
		return nil, err
	}
	defer api.DeleteShader(fragment)

	program := api.CreateProgram()
	if program == 0 {
		return nil, fmt.Errorf("gl.CreateProgram(): %w", ErrNoObject)
	}

	api.AttachShader(program, vertex)
	api.AttachShader(program, fragment)
	api.LinkProgram(program)

	if api.GetProgramiv(program, gl.LINK_STATUS) == gl.FALSE {
		log := api.GetProgramInfoLog(program)
		api.DeleteProgram(program)
		return nil, &ShaderError{Stage: core.UnknownShaderStage, Log: log}
	}

	return &Program{
		api:      api,
		id:       program,
		uniforms: make(map[string]int32),
	}, nil
}

// Program is a linked shader program
type Program struct {
	api      GL
	id       uint32
	uniforms map[string]int32
}

// Get returns the GL program name
func (p *Program) Get() uint32 {
	return p.id
}

// Uniform returns the location of an active uniform. A uniform
// the program doesn't have is an error, not location -1.
func (p *Program) Uniform(name string) (int32, error) {
	if location, ok := p.uniforms[name]; ok {
		return location, nil
	}
	location := p.api.GetUniformLocation(p.id, name)
	if location < 0 {
		return -1, fmt.Errorf("%w: %s", ErrUniformMissing, name)
	}
	p.uniforms[name] = location
	return location, nil
}

// Release deletes the program
func (p *Program) Release() {
	if p.id != 0 {
		p.api.DeleteProgram(p.id)
		p.id = 0
	}
}
