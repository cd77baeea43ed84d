package core

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gobuffalo/envy"
	glm "github.com/go-gl/mathgl/mgl32"
	"github.com/joho/godotenv"
)

// BuildMode is the default asset mode. Packaged builds set it with
// -ldflags "-X github.com/devblok/koruview/core.BuildMode=production"
var BuildMode = string(DevelopmentMode)

// Configuration defines a global engine configuration setting
type Configuration struct {
	Time     TimeConfiguration
	Renderer RendererConfiguration
	Assets   AssetConfiguration
	LogLevel string
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int

	// EventPollDelay is the delay in milliseconds between
	// frame statistics reports
	EventPollDelay int
}

// RendererConfiguration is used to configure the renderer
type RendererConfiguration struct {
	ScreenWidth  uint32
	ScreenHeight uint32
	Title        string
	VSync        bool
	ClearColor   glm.Vec4
}

// AssetMode selects where assets are resolved from
type AssetMode string

// Asset modes
const (
	// DevelopmentMode resolves assets relative to the project root
	DevelopmentMode AssetMode = "development"

	// ProductionMode resolves assets relative to the executable
	ProductionMode AssetMode = "production"
)

// AssetConfiguration is used to configure asset resolution
type AssetConfiguration struct {
	Mode AssetMode

	// Root overrides the base directory assets are resolved against
	Root string

	// Archive is an optional kar bundle, relative to the base directory
	Archive string

	// Scene is the scene description asset
	Scene string
}

// DefaultConfiguration is used for everything that is not configured
var DefaultConfiguration = Configuration{
	Time: TimeConfiguration{
		FramesPerSecond: 60,
		EventPollDelay:  1000,
	},
	Renderer: RendererConfiguration{
		ScreenWidth:  1280,
		ScreenHeight: 720,
		Title:        "3D Window",
		VSync:        true,
		ClearColor:   glm.Vec4{0, 0, 0, 1},
	},
	Assets: AssetConfiguration{
		Archive: "assets.kar",
		Scene:   "scene.yaml",
	},
	LogLevel: "info",
}

// LoadConfiguration reads the given dotenv files and the environment
// on top of DefaultConfiguration. Values already present in the
// environment take precedence over the files, missing files are skipped.
func LoadConfiguration(files ...string) (Configuration, error) {
	for _, file := range files {
		values, err := godotenv.Read(file)
		if os.IsNotExist(err) {
			continue
		} else if err != nil {
			return Configuration{}, fmt.Errorf("config file %s: %w", file, err)
		}
		for key, value := range values {
			if envy.Get(key, "") == "" {
				envy.Set(key, value)
			}
		}
	}

	cfg := DefaultConfiguration
	cfg.Assets.Mode = AssetMode(envString("KORU_ENV", BuildMode))
	cfg.Assets.Root = envString("KORU_ASSET_ROOT", cfg.Assets.Root)
	cfg.Assets.Archive = envString("KORU_ASSET_ARCHIVE", cfg.Assets.Archive)
	cfg.Assets.Scene = envString("KORU_SCENE", cfg.Assets.Scene)
	cfg.Renderer.Title = envString("KORU_TITLE", cfg.Renderer.Title)
	cfg.LogLevel = envString("KORU_LOG_LEVEL", cfg.LogLevel)

	switch cfg.Assets.Mode {
	case DevelopmentMode, ProductionMode:
	default:
		return Configuration{}, fmt.Errorf("KORU_ENV: unknown mode %q", cfg.Assets.Mode)
	}

	var err error
	if cfg.Renderer.ScreenWidth, err = envUint32("KORU_WIDTH", cfg.Renderer.ScreenWidth); err != nil {
		return Configuration{}, err
	}
	if cfg.Renderer.ScreenHeight, err = envUint32("KORU_HEIGHT", cfg.Renderer.ScreenHeight); err != nil {
		return Configuration{}, err
	}
	if cfg.Time.FramesPerSecond, err = envInt("KORU_FPS", cfg.Time.FramesPerSecond); err != nil {
		return Configuration{}, err
	}
	if raw := envy.Get("KORU_VSYNC", ""); raw != "" {
		if cfg.Renderer.VSync, err = strconv.ParseBool(raw); err != nil {
			return Configuration{}, fmt.Errorf("KORU_VSYNC: %w", err)
		}
	}
	return cfg, nil
}

// envString treats an empty value as unset
func envString(key, fallback string) string {
	if raw := envy.Get(key, ""); raw != "" {
		return raw
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := envy.Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	num, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if num < 0 {
		return 0, fmt.Errorf("%s: negative value %d", key, num)
	}
	return num, nil
}

func envUint32(key string, fallback uint32) (uint32, error) {
	raw := envy.Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	num, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if num == 0 {
		return 0, fmt.Errorf("%s: must be positive", key)
	}
	return uint32(num), nil
}
