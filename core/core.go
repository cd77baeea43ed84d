package core

// Destroyable is anything that holds resources which
// have to be released explicitly
type Destroyable interface {
	// Destroy destroys internal members
	Destroy()
}

// Renderer describes the rendering machinery.
// It's created only with internal values set,
// it needs to be initialised with Initialise() before use.
type Renderer interface {
	Destroyable

	// Initialise builds the shader program and uploads every model.
	// Has to be called once, on the thread that owns the graphics context.
	Initialise(ShaderSources, []LoadedModel) error

	// Frame renders and presents one frame for the given input
	Frame(FrameInput) error
}

// FrameInput is everything the renderer needs from the window
// shell to produce one frame
type FrameInput struct {
	Width  int
	Height int
	Input  InputState
}

// Aspect returns the viewport aspect ratio
func (f FrameInput) Aspect() float32 {
	return float32(f.Width) / float32(f.Height)
}

// ShaderStage represents the type of shader thats loaded
type ShaderStage int

// Identifies shader objects with their stages
const (
	VertexShaderStage ShaderStage = iota
	FragmentShaderStage
	UnknownShaderStage
)

// String implements fmt.Stringer
func (s ShaderStage) String() string {
	switch s {
	case VertexShaderStage:
		return "vertex"
	case FragmentShaderStage:
		return "fragment"
	}
	return "unknown"
}

// ShaderSources holds the source text of the viewer's program
type ShaderSources struct {
	Vertex   string
	Fragment string
}
