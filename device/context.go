package device

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/koruview/core"
)

// Requested context version
const (
	MajorVersion = 4
	MinorVersion = 1
	DepthBits    = 24
)

// NewContext opens a resizable window with an OpenGL 4.1 core
// context and makes the context current. Must be called from
// the locked main thread.
func NewContext(cfg core.RendererConfiguration) (*Context, error) {
	return newContext(cfg, sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE|sdl.WINDOW_ALLOW_HIGHDPI)
}

// NewHiddenContext opens a context with a window that is never shown
func NewHiddenContext(cfg core.RendererConfiguration) (*Context, error) {
	return newContext(cfg, sdl.WINDOW_HIDDEN)
}

func newContext(cfg core.RendererConfiguration, flags uint32) (*Context, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("sdl.Init(): %w", err)
	}

	attributes := []struct {
		attr  sdl.GLattr
		value int
	}{
		{sdl.GL_CONTEXT_MAJOR_VERSION, MajorVersion},
		{sdl.GL_CONTEXT_MINOR_VERSION, MinorVersion},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG},
		{sdl.GL_DEPTH_SIZE, DepthBits},
		{sdl.GL_DOUBLEBUFFER, 1},
	}
	for _, a := range attributes {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			sdl.Quit()
			return nil, fmt.Errorf("sdl.GLSetAttribute(%d): %w", a.attr, err)
		}
	}

	window, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.ScreenWidth),
		int32(cfg.ScreenHeight),
		flags|sdl.WINDOW_OPENGL)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl.CreateWindow(): %w", err)
	}

	c := &Context{window: window}

	if c.context, err = window.GLCreateContext(); err != nil {
		c.Destroy()
		return nil, fmt.Errorf("sdl.GLCreateContext(): %w", err)
	}
	if err := window.GLMakeCurrent(c.context); err != nil {
		c.Destroy()
		return nil, fmt.Errorf("sdl.GLMakeCurrent(): %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.WithError(err).WithField("interval", interval).Warn("Swap interval not supported")
	}

	if err := gl.Init(); err != nil {
		c.Destroy()
		return nil, fmt.Errorf("gl.Init(): %w", err)
	}

	info := c.Info()
	log.WithFields(log.Fields{
		"vendor":   info.Vendor,
		"renderer": info.Renderer,
		"version":  info.Version,
	}).Info("OpenGL context created")
	return c, nil
}

// Context is an SDL window with a current OpenGL context
type Context struct {
	Device

	window  *sdl.Window
	context sdl.GLContext
}

// Window returns the SDL window of the context
func (c *Context) Window() *sdl.Window {
	return c.window
}

// Info implements interface
func (c *Context) Info() Info {
	return Info{
		Vendor:          gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer:        gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:         gl.GoStr(gl.GetString(gl.VERSION)),
		ShadingLanguage: gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
}

// DrawableSize implements interface
func (c *Context) DrawableSize() (int, int) {
	width, height := c.window.GLGetDrawableSize()
	return int(width), int(height)
}

// Swap implements interface. SDL doesn't report swap failures
// directly, they are read back from the SDL error state.
func (c *Context) Swap() error {
	sdl.ClearError()
	c.window.GLSwap()
	if err := sdl.GetError(); err != nil {
		return fmt.Errorf("sdl.GLSwap(): %w", err)
	}
	return nil
}

// Destroy implements interface
func (c *Context) Destroy() {
	if c.context != nil {
		sdl.GLDeleteContext(c.context)
		c.context = nil
	}
	if c.window != nil {
		if err := c.window.Destroy(); err != nil {
			log.WithError(err).Warn("Failed to destroy window")
		}
		c.window = nil
	}
	sdl.Quit()
}
