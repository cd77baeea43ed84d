package core

import (
	"errors"
	"fmt"

	glm "github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/devblok/koruview/model"
)

// SceneDescription lists the models the viewer renders and
// the program it renders them with
type SceneDescription struct {
	Shaders ShaderSet          `yaml:"shaders"`
	Models  []ModelDescription `yaml:"models"`
}

// ShaderSet names the shader source assets
type ShaderSet struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

// ModelDescription is one rendered model instance
type ModelDescription struct {
	Name     string     `yaml:"name"`
	Mesh     string     `yaml:"mesh"`
	Textures TextureSet `yaml:"textures"`
	Offset   glm.Vec3   `yaml:"offset,flow"`
}

// TextureSet names the four material maps of a model
type TextureSet struct {
	Albedo            string `yaml:"albedo"`
	AmbientOcclusion  string `yaml:"ao"`
	MetallicRoughness string `yaml:"metallic"`
	Normal            string `yaml:"normal"`
}

// Paths returns the map names indexed by model.TextureKind
func (s TextureSet) Paths() [model.TextureKindCount]string {
	return [model.TextureKindCount]string{
		model.AlbedoMap:            s.Albedo,
		model.AmbientOcclusionMap:  s.AmbientOcclusion,
		model.MetallicRoughnessMap: s.MetallicRoughness,
		model.NormalMap:            s.Normal,
	}
}

// DefaultShaders are the built-in shader sources
var DefaultShaders = ShaderSet{
	Vertex:   "shaders/model.vert",
	Fragment: "shaders/model.frag",
}

// DefaultScene is shown when there is no scene description,
// two guitars side by side
var DefaultScene = SceneDescription{
	Shaders: DefaultShaders,
	Models: []ModelDescription{
		{
			Name:     "guitar-left",
			Mesh:     "objs/Guitar_01_OBJ/Guitar_01.obj",
			Textures: guitarTextures,
			Offset:   glm.Vec3{2.5, 0, 0},
		},
		{
			Name:     "guitar-right",
			Mesh:     "objs/Guitar_01_OBJ/Guitar_01.obj",
			Textures: guitarTextures,
			Offset:   glm.Vec3{-2.5, 0, 0},
		},
	},
}

var guitarTextures = TextureSet{
	Albedo:            "objs/Guitar_01_OBJ/Guitar_01_Albedo.png",
	AmbientOcclusion:  "objs/Guitar_01_OBJ/Guitar_01_AO.png",
	MetallicRoughness: "objs/Guitar_01_OBJ/Guitar_01_Metallic.png",
	Normal:            "objs/Guitar_01_OBJ/Guitar_01_Normal.png",
}

// ParseScene decodes and validates a YAML scene description.
// Missing shader names fall back to DefaultShaders.
func ParseScene(data []byte) (SceneDescription, error) {
	var scene SceneDescription
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return SceneDescription{}, err
	}
	if scene.Shaders.Vertex == "" {
		scene.Shaders.Vertex = DefaultShaders.Vertex
	}
	if scene.Shaders.Fragment == "" {
		scene.Shaders.Fragment = DefaultShaders.Fragment
	}
	if err := scene.Validate(); err != nil {
		return SceneDescription{}, err
	}
	return scene, nil
}

// Validate checks that every model names a mesh and all four maps
func (s SceneDescription) Validate() error {
	if len(s.Models) == 0 {
		return errors.New("scene has no models")
	}
	for idx, m := range s.Models {
		if m.Mesh == "" {
			return fmt.Errorf("model %d (%s): no mesh", idx, m.Name)
		}
		for kind, name := range m.Textures.Paths() {
			if name == "" {
				return fmt.Errorf("model %d (%s): no %s", idx, m.Name, model.TextureKind(kind))
			}
		}
	}
	return nil
}
