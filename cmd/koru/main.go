package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/koruview/core"
	"github.com/devblok/koruview/core/renderer"
	"github.com/devblok/koruview/device"
)

func init() {
	runtime.LockOSThread()
}

var frameCounter int64

// Profiling
var (
	configFile   = flag.String("config", ".env", "Dotenv file with configuration overrides")
	cpuProfile   = flag.String("cpuprof", "", "Profile CPU usage to file")
	memProfile   = flag.String("memprof", "", "Profile memory usage into a file")
	traceProfile = flag.String("trace", "", "Trace output for profiling")
)

func main() {
	flag.Parse()

	configuration, err := core.LoadConfiguration(*configFile)
	if err != nil {
		log.WithError(err).Fatal("Configuration failed")
	}
	level, err := log.ParseLevel(configuration.LogLevel)
	if err != nil {
		log.WithError(err).Fatal("Configuration failed")
	}
	log.SetLevel(level)

	if err := run(configuration); err != nil {
		log.WithError(err).Fatal("Viewer stopped")
	}
}

func run(configuration core.Configuration) error {
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	if *traceProfile != "" {
		f, err := os.Create(*traceProfile)
		if err != nil {
			return err
		}
		if err := trace.Start(f); err != nil {
			return err
		}
		defer trace.Stop()
	}

	assets, err := core.OpenAssets(configuration.Assets)
	if err != nil {
		return err
	}
	defer assets.Destroy()

	scene, err := core.LoadScene(assets, configuration.Assets.Scene)
	if err != nil {
		return err
	}
	sources, err := core.LoadShaders(assets, scene.Shaders)
	if err != nil {
		return err
	}
	models, err := core.LoadModels(assets, scene)
	if err != nil {
		return err
	}

	ctx, err := device.NewContext(configuration.Renderer)
	if err != nil {
		return err
	}
	defer ctx.Destroy()

	api, err := renderer.NewGL()
	if err != nil {
		return err
	}
	glRenderer := renderer.New(api, ctx, renderer.NewConfiguration(configuration.Renderer))
	if err := glRenderer.Initialise(sources, models); err != nil {
		return err
	}
	defer glRenderer.Destroy()

	if err := loop(glRenderer, ctx, core.NewTime(configuration.Time)); err != nil {
		return err
	}

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return err
		}
	}
	return nil
}

// loop renders frames until the window is closed. Events are
// drained right before every frame, on the thread owning the context.
func loop(r core.Renderer, dev device.Device, timeService core.Time) error {
	defer timeService.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	programSync := sync.WaitGroup{}

	/* Frame statistics */
	programSync.Add(1)
	go func(ctx context.Context, wg *sync.WaitGroup) {
		defer wg.Done()
		seconds := timeService.EventPollDelay().Seconds()
		for {
			select {
			case <-ctx.Done():
				return
			case <-timeService.EventTicker().C:
				count := atomic.SwapInt64(&frameCounter, 0)
				log.WithFields(log.Fields{
					"fps":      float64(count) / seconds,
					"cgoCalls": runtime.NumCgoCall(),
				}).Debug("Frame statistics")
			}
		}
	}(ctx, &programSync)
	defer programSync.Wait()
	defer cancel()

	input := core.NewInputState()

EventLoop:
	for {
		select {
		case <-timeService.FpsTicker().C:
			for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				if quit := handleEvent(event, &input); quit {
					log.Info("Window closed")
					break EventLoop
				}
			}

			width, height := dev.DrawableSize()
			if err := r.Frame(core.FrameInput{
				Width:  width,
				Height: height,
				Input:  input,
			}); err != nil {
				return err
			}
			atomic.AddInt64(&frameCounter, 1)
		}
	}
	return nil
}
