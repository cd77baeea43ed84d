//go:build integration

package renderer_test

import (
	"math"
	"runtime"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/go-gl/gl/v4.1-core/gl"
	glm "github.com/go-gl/mathgl/mgl32"
	"github.com/gobuffalo/packr"

	"github.com/devblok/koruview/core"
	"github.com/devblok/koruview/core/renderer"
	"github.com/devblok/koruview/device"
	"github.com/devblok/koruview/model"
)

const viewportSize = 64

// readbackSurface keeps a copy of the back buffer before presenting it
type readbackSurface struct {
	device *device.Context
	pixels []uint8
}

func (s *readbackSurface) Swap() error {
	s.pixels = make([]uint8, viewportSize*viewportSize*4)
	gl.ReadPixels(0, 0, viewportSize, viewportSize, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(s.pixels))
	return s.device.Swap()
}

func solid(r, g, b uint8) *model.Texture {
	return &model.Texture{Width: 1, Height: 1, Pix: []uint8{r, g, b, 255}}
}

func TestRenderPlane(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	c := qt.New(t)

	cfg := core.DefaultConfiguration.Renderer
	cfg.ScreenWidth, cfg.ScreenHeight = viewportSize, viewportSize
	cfg.VSync = false
	ctx, err := device.NewHiddenContext(cfg)
	if err != nil {
		c.Skipf("no OpenGL context: %s", err)
	}
	defer ctx.Destroy()

	api, err := renderer.NewGL()
	c.Assert(err, qt.IsNil)

	shaders := packr.NewBox("../../assets/shaders")
	vertex, err := shaders.FindString("model.vert")
	c.Assert(err, qt.IsNil)
	fragment, err := shaders.FindString("model.frag")
	c.Assert(err, qt.IsNil)

	plane, err := packr.NewBox("../testdata").Find("plane.obj")
	c.Assert(err, qt.IsNil)
	mesh, err := model.ImportObject(plane)
	c.Assert(err, qt.IsNil)

	surface := &readbackSurface{device: ctx}
	r := renderer.New(api, surface, renderer.NewConfiguration(cfg))
	err = r.Initialise(core.ShaderSources{Vertex: vertex, Fragment: fragment}, []core.LoadedModel{{
		Name: "plane",
		Mesh: mesh,
		Textures: [model.TextureKindCount]*model.Texture{
			model.AlbedoMap:            solid(255, 255, 255),
			model.AmbientOcclusionMap:  solid(255, 255, 255),
			model.MetallicRoughnessMap: solid(0, 255, 0),
			model.NormalMap:            solid(128, 128, 255),
		},
		Offset: glm.Vec3{},
	}})
	c.Assert(err, qt.IsNil)
	defer r.Destroy()

	count, err := r.IndexCount(0)
	c.Assert(err, qt.IsNil)
	c.Assert(count/3, qt.Equals, mesh.TriangleCount())

	err = r.Frame(core.FrameInput{Width: viewportSize, Height: viewportSize, Input: core.NewInputState()})
	c.Assert(err, qt.IsNil)
	c.Assert(surface.pixels, qt.HasLen, viewportSize*viewportSize*4)

	// a unit half-extent plane 5 units away spans this many pixels from the center
	halfExtent := viewportSize / 2 / (core.CameraDistance * math.Tan(float64(glm.DegToRad(core.FieldOfView/2))))
	center := viewportSize / 2.0

	var mismatches int
	for y := 0; y < viewportSize; y++ {
		for x := 0; x < viewportSize; x++ {
			dx := math.Abs(float64(x) + 0.5 - center)
			dy := math.Abs(float64(y) + 0.5 - center)
			distance := math.Max(dx, dy)
			if math.Abs(distance-halfExtent) < 1 {
				continue
			}
			lit := surface.pixels[(y*viewportSize+x)*4] > 10
			if lit != (distance < halfExtent) {
				mismatches++
			}
		}
	}
	c.Assert(mismatches, qt.Equals, 0)
}
