package core

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gobuffalo/packd"
	"github.com/gobuffalo/packr"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/koruview/utility/kar"
)

// ErrAssetNotFound is returned when no asset source has the asset
var ErrAssetNotFound = errors.New("asset not found")

// AssetDirectory is the directory, relative to the base directory,
// that holds loose asset files
const AssetDirectory = "assets"

// builtinShaders is the fallback for the viewer's shader sources
var builtinShaders = builtinSource{
	prefix: "shaders/",
	box:    packr.NewBox("../assets/shaders"),
}

// ResolveAssetPath resolves a relative path against the base
// directory of the configured mode: the project root during
// development and the executable's directory when packaged.
func ResolveAssetPath(cfg AssetConfiguration, relative string) (string, error) {
	base, err := baseDirectory(cfg)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, filepath.FromSlash(relative)), nil
}

func baseDirectory(cfg AssetConfiguration) (string, error) {
	if cfg.Root != "" {
		return cfg.Root, nil
	}
	switch cfg.Mode {
	case ProductionMode:
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("os.Executable(): %w", err)
		}
		return filepath.Dir(exe), nil
	default:
		return projectRoot(), nil
	}
}

// projectRoot is the directory this source tree was built from
func projectRoot() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(file))
}

// Directory serves assets from a directory on disk
type Directory struct {
	Root string
}

func (d Directory) path(name string) string {
	return filepath.Join(d.Root, filepath.FromSlash(name))
}

// Has implements packd.Haser
func (d Directory) Has(name string) bool {
	info, err := os.Stat(d.path(name))
	return err == nil && !info.IsDir()
}

// Find implements packd.Finder
func (d Directory) Find(name string) ([]byte, error) {
	return ioutil.ReadFile(d.path(name))
}

// FindString implements packd.Finder
func (d Directory) FindString(name string) (string, error) {
	data, err := d.Find(name)
	return string(data), err
}

// builtinSource serves a packr box under a name prefix
type builtinSource struct {
	prefix string
	box    packr.Box
}

func (b builtinSource) name(name string) (string, bool) {
	if !strings.HasPrefix(name, b.prefix) {
		return "", false
	}
	return strings.TrimPrefix(name, b.prefix), true
}

// Has implements packd.Haser
func (b builtinSource) Has(name string) bool {
	boxName, ok := b.name(name)
	return ok && b.box.Has(boxName)
}

// Find implements packd.Finder
func (b builtinSource) Find(name string) ([]byte, error) {
	boxName, ok := b.name(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}
	return b.box.Find(boxName)
}

// FindString implements packd.Finder
func (b builtinSource) FindString(name string) (string, error) {
	data, err := b.Find(name)
	return string(data), err
}

// Assets looks up assets in an ordered list of sources,
// the first source that has an asset serves it
type Assets struct {
	sources []packd.Finder
	closers []io.Closer
}

// NewAssets creates Assets backed by the given sources
func NewAssets(sources ...packd.Finder) *Assets {
	return &Assets{sources: sources}
}

// OpenAssets builds the asset source chain for the configuration:
// the asset directory, then the kar archive if one exists, then
// the built-in shaders
func OpenAssets(cfg AssetConfiguration) (*Assets, error) {
	root, err := ResolveAssetPath(cfg, AssetDirectory)
	if err != nil {
		return nil, err
	}
	assets := NewAssets(Directory{Root: root})
	log.WithField("path", root).Debug("Asset directory")

	if cfg.Archive != "" {
		archivePath, err := ResolveAssetPath(cfg, cfg.Archive)
		if err != nil {
			return nil, err
		}
		if _, statErr := os.Stat(archivePath); statErr == nil {
			archive, err := kar.OpenFile(archivePath)
			if err != nil {
				return nil, fmt.Errorf("asset archive %s: %w", archivePath, err)
			}
			assets.sources = append(assets.sources, archive)
			assets.closers = append(assets.closers, archive)
			log.WithField("path", archivePath).WithField("files", len(archive.List())).Info("Asset archive opened")
		} else {
			log.WithField("path", archivePath).Debug("No asset archive")
		}
	}

	assets.sources = append(assets.sources, builtinShaders)
	return assets, nil
}

// Has implements packd.Haser
func (a *Assets) Has(name string) bool {
	return a.source(name) != nil
}

// Find implements packd.Finder. The error names the asset.
func (a *Assets) Find(name string) ([]byte, error) {
	src := a.source(name)
	if src == nil {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}
	data, err := src.Find(name)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", name, err)
	}
	return data, nil
}

// FindString implements packd.Finder
func (a *Assets) FindString(name string) (string, error) {
	data, err := a.Find(name)
	return string(data), err
}

// Destroy closes every source that needs closing
func (a *Assets) Destroy() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			log.WithError(err).Warn("Failed to close asset source")
		}
	}
	a.closers = nil
}

// source returns the first source with the asset. A source that
// can't tell whether it has an asset is always asked.
func (a *Assets) source(name string) packd.Finder {
	for _, src := range a.sources {
		if h, ok := src.(packd.Haser); ok && !h.Has(name) {
			continue
		}
		return src
	}
	return nil
}
