package core

import (
	"errors"
	"fmt"

	"github.com/gobuffalo/packd"
	glm "github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/koruview/model"
)

// LoadedModel is a model instance with its data in memory.
// Instances that share a mesh or a texture set share the pointers.
type LoadedModel struct {
	Name     string
	Mesh     *model.Mesh
	Textures [model.TextureKindCount]*model.Texture
	Offset   glm.Vec3
}

// LoadScene reads the named scene description. When the
// description does not exist DefaultScene is returned.
func LoadScene(src packd.Finder, name string) (SceneDescription, error) {
	data, err := src.Find(name)
	if errors.Is(err, ErrAssetNotFound) {
		log.WithField("path", name).Info("No scene description, using the default scene")
		return DefaultScene, nil
	} else if err != nil {
		return SceneDescription{}, err
	}

	scene, err := ParseScene(data)
	if err != nil {
		return SceneDescription{}, fmt.Errorf("scene %s: %w", name, err)
	}
	return scene, nil
}

// LoadShaders reads the vertex and fragment shader sources
func LoadShaders(src packd.Finder, set ShaderSet) (ShaderSources, error) {
	vertex, err := src.FindString(set.Vertex)
	if err != nil {
		return ShaderSources{}, err
	}
	fragment, err := src.FindString(set.Fragment)
	if err != nil {
		return ShaderSources{}, err
	}
	return ShaderSources{
		Vertex:   vertex,
		Fragment: fragment,
	}, nil
}

// LoadMesh reads and imports the named OBJ file
func LoadMesh(src packd.Finder, name string) (*model.Mesh, error) {
	data, err := src.Find(name)
	if err != nil {
		return nil, err
	}
	mesh, err := model.ImportObject(data)
	if err != nil {
		return nil, fmt.Errorf("mesh import %s: %w", name, err)
	}
	return mesh, nil
}

// LoadModels loads every model of the scene. Meshes are loaded one after
// another, the texture maps of each set in parallel. A mesh or texture set
// used by more than one model is loaded once.
func LoadModels(src packd.Finder, scene SceneDescription) ([]LoadedModel, error) {
	var (
		models   = make([]LoadedModel, 0, len(scene.Models))
		meshes   = make(map[string]*model.Mesh)
		textures = make(map[TextureSet][model.TextureKindCount]*model.Texture)
	)

	for _, desc := range scene.Models {
		mesh, ok := meshes[desc.Mesh]
		if !ok {
			var err error
			if mesh, err = LoadMesh(src, desc.Mesh); err != nil {
				return nil, err
			}
			meshes[desc.Mesh] = mesh
			log.WithFields(log.Fields{
				"path":     desc.Mesh,
				"vertices": len(mesh.Vertices),
				"indices":  len(mesh.Indices),
			}).Info("Mesh loaded")
		}

		set, ok := textures[desc.Textures]
		if !ok {
			var err error
			if set, err = LoadTextureSet(src, desc.Textures); err != nil {
				return nil, err
			}
			textures[desc.Textures] = set
			log.WithField("path", desc.Textures.Albedo).Debug("Texture set loaded")
		}

		models = append(models, LoadedModel{
			Name:     desc.Name,
			Mesh:     mesh,
			Textures: set,
			Offset:   desc.Offset,
		})
	}
	return models, nil
}
