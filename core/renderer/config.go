package renderer

import (
	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/koruview/core"
)

// Configuration describes the renderer configuration
type Configuration struct {
	ClearColor glm.Vec4

	ScreenWidth  uint32
	ScreenHeight uint32
}

// NewConfiguration picks the renderer settings from the engine configuration
func NewConfiguration(cfg core.RendererConfiguration) Configuration {
	return Configuration{
		ClearColor:   cfg.ClearColor,
		ScreenWidth:  cfg.ScreenWidth,
		ScreenHeight: cfg.ScreenHeight,
	}
}
