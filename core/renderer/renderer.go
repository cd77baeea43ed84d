package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	glm "github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/koruview/core"
	"github.com/devblok/koruview/model"
)

// Renderer errors
var (
	ErrNotReady       = errors.New("renderer is not initialised")
	ErrTerminated     = errors.New("renderer is terminated")
	ErrUniformMissing = errors.New("uniform not found in program")
)

// Uniform names of the program
const (
	modelUniform      = "model"
	viewUniform       = "view"
	projectionUniform = "projection"
	cameraPosUniform  = "cameraPos"
	cameraDirUniform  = "cameraDir"
)

// State is the lifecycle state of the renderer
type State int

// Renderer states
const (
	Uninitialized State = iota
	Ready
	Rendering
	Terminated
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Rendering:
		return "rendering"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

// Surface presents finished frames
type Surface interface {
	// Swap swaps the back buffer to the screen
	Swap() error
}

// New creates a not yet initialised OpenGL renderer.
// The GL context has to be current on the calling thread
// for the whole life of the renderer.
func New(api GL, surface Surface, cfg Configuration) *OpenGL {
	return &OpenGL{
		api:           api,
		surface:       surface,
		configuration: cfg,
	}
}

// OpenGL renders the scene with a single shader program
type OpenGL struct {
	core.Renderer

	api           GL
	surface       Surface
	configuration Configuration
	state         State

	program  *Program
	uniforms uniformLocations

	arrays    []*VertexArray
	textures  []*Texture
	instances []instance
	bound     [model.TextureKindCount]*Texture
}

type uniformLocations struct {
	model, view, projection int32
	cameraPos, cameraDir    int32
}

// instance is one drawn model, instances loaded from
// the same data share their GPU resources
type instance struct {
	name     string
	array    *VertexArray
	textures [model.TextureKindCount]*Texture
	offset   glm.Vec3
}

// State returns the current lifecycle state
func (r *OpenGL) State() State {
	return r.state
}

// Instances returns the number of drawn model instances
func (r *OpenGL) Instances() int {
	return len(r.instances)
}

// Initialise implements interface. Builds the program, uploads every
// model and binds the sampler uniforms to their texture units.
func (r *OpenGL) Initialise(sources core.ShaderSources, models []core.LoadedModel) error {
	if r.state != Uninitialized {
		return fmt.Errorf("Initialise(): renderer is %s", r.state)
	}
	if len(models) == 0 {
		return errors.New("Initialise(): no models to render")
	}

	if err := r.buildProgram(sources); err != nil {
		r.release()
		return err
	}
	if err := r.upload(models); err != nil {
		r.release()
		return err
	}

	r.bindTextures(r.instances[0].textures)
	r.api.Viewport(0, 0, int32(r.configuration.ScreenWidth), int32(r.configuration.ScreenHeight))
	r.api.Enable(gl.DEPTH_TEST)
	if err := checkError(r.api, "Initialise()"); err != nil {
		r.release()
		return err
	}

	log.WithFields(log.Fields{
		"instances": len(r.instances),
		"meshes":    len(r.arrays),
		"textures":  len(r.textures),
	}).Info("Renderer ready")
	r.state = Ready
	return nil
}

func (r *OpenGL) buildProgram(sources core.ShaderSources) error {
	program, err := linkProgram(r.api, sources)
	if err != nil {
		return err
	}
	r.program = program

	locations := []struct {
		name     string
		location *int32
	}{
		{modelUniform, &r.uniforms.model},
		{viewUniform, &r.uniforms.view},
		{projectionUniform, &r.uniforms.projection},
		{cameraPosUniform, &r.uniforms.cameraPos},
		{cameraDirUniform, &r.uniforms.cameraDir},
	}
	for _, l := range locations {
		if *l.location, err = program.Uniform(l.name); err != nil {
			return err
		}
	}

	r.api.UseProgram(program.Get())
	for kind := model.TextureKind(0); kind < model.TextureKindCount; kind++ {
		location, err := program.Uniform(kind.String())
		if err != nil {
			return err
		}
		r.api.Uniform1i(location, int32(kind))
	}
	return nil
}

func (r *OpenGL) upload(models []core.LoadedModel) error {
	var (
		arrays   = make(map[*model.Mesh]*VertexArray)
		textures = make(map[*model.Texture]*Texture)
	)

	for _, m := range models {
		if m.Mesh == nil {
			return fmt.Errorf("model %s: no mesh", m.Name)
		}
		inst := instance{
			name:   m.Name,
			offset: m.Offset,
		}

		if inst.array = arrays[m.Mesh]; inst.array == nil {
			array, err := uploadMesh(r.api, m.Mesh)
			if err != nil {
				return fmt.Errorf("model %s: %w", m.Name, err)
			}
			arrays[m.Mesh] = array
			r.arrays = append(r.arrays, array)
			inst.array = array
		}

		for kind, tex := range m.Textures {
			if tex == nil {
				return fmt.Errorf("model %s: no %s", m.Name, model.TextureKind(kind))
			}
			if inst.textures[kind] = textures[tex]; inst.textures[kind] != nil {
				continue
			}
			texture, err := createTexture(r.api, tex)
			if err != nil {
				return fmt.Errorf("model %s: %s: %w", m.Name, model.TextureKind(kind), err)
			}
			textures[tex] = texture
			r.textures = append(r.textures, texture)
			inst.textures[kind] = texture
		}

		r.instances = append(r.instances, inst)
	}
	return nil
}

// bindTextures binds the maps whose unit holds a different texture
func (r *OpenGL) bindTextures(set [model.TextureKindCount]*Texture) {
	for kind, tex := range set {
		if r.bound[kind] == tex {
			continue
		}
		tex.Bind(model.TextureKind(kind))
		r.bound[kind] = tex
	}
}

// Frame implements interface. The first drawn frame moves the renderer
// from Ready to Rendering, where it stays until it is destroyed. A frame
// with an empty viewport is skipped. A failed present terminates the renderer.
func (r *OpenGL) Frame(in core.FrameInput) error {
	switch r.state {
	case Uninitialized:
		return ErrNotReady
	case Terminated:
		return ErrTerminated
	}
	if in.Width <= 0 || in.Height <= 0 {
		return nil
	}
	r.state = Rendering

	uniform := core.FrameUniform(in.Input, in.Aspect())

	r.api.Viewport(0, 0, int32(in.Width), int32(in.Height))
	r.api.UseProgram(r.program.Get())
	r.api.UniformMatrix4fv(r.uniforms.view, uniform.View)
	r.api.UniformMatrix4fv(r.uniforms.projection, uniform.Projection)
	r.api.Uniform3f(r.uniforms.cameraPos, uniform.CameraPos)
	r.api.Uniform3f(r.uniforms.cameraDir, uniform.CameraDir)

	color := r.configuration.ClearColor
	r.api.ClearColor(color[0], color[1], color[2], color[3])
	r.api.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.api.Enable(gl.DEPTH_TEST)

	for _, inst := range r.instances {
		r.bindTextures(inst.textures)
		r.api.UniformMatrix4fv(r.uniforms.model, core.ModelMatrix(in.Input, inst.offset))
		r.api.BindVertexArray(inst.array.Get())
		r.api.DrawElements(gl.TRIANGLES, inst.array.Count(), gl.UNSIGNED_INT)
	}
	r.api.BindVertexArray(0)

	if err := r.surface.Swap(); err != nil {
		r.state = Terminated
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

// IndexCount reads back the number of indices uploaded
// for the i-th model instance
func (r *OpenGL) IndexCount(i int) (int, error) {
	if r.state == Uninitialized {
		return 0, ErrNotReady
	} else if r.state == Terminated {
		return 0, ErrTerminated
	}
	if i < 0 || i >= len(r.instances) {
		return 0, fmt.Errorf("IndexCount(): no instance %d", i)
	}
	return r.instances[i].array.IndexBufferLength()
}

// Destroy implements interface
func (r *OpenGL) Destroy() {
	r.release()
	r.state = Terminated
}

func (r *OpenGL) release() {
	for _, tex := range r.textures {
		tex.Release()
	}
	for _, array := range r.arrays {
		array.Release()
	}
	if r.program != nil {
		r.program.Release()
	}
	r.textures = nil
	r.arrays = nil
	r.instances = nil
	r.program = nil
	r.bound = [model.TextureKindCount]*Texture{}
}
