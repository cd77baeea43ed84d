package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/devblok/koruview/model"
)

// createTexture uploads RGBA8 pixels into a repeating, trilinear
// filtered 2D texture with a full mipmap chain
func createTexture(api GL, tex *model.Texture) (*Texture, error) {
	if tex.Width <= 0 || tex.Height <= 0 || len(tex.Pix) != tex.Width*tex.Height*4 {
		return nil, fmt.Errorf("create texture: %d bytes of pixels for %dx%d", len(tex.Pix), tex.Width, tex.Height)
	}

	id := api.GenTexture()
	if id == 0 {
		return nil, fmt.Errorf("gl.GenTextures(): %w", ErrNoObject)
	}
	api.BindTexture(gl.TEXTURE_2D, id)
	api.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	api.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	api.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	api.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	api.TexImage2D(gl.TEXTURE_2D, int32(tex.Width), int32(tex.Height), tex.Pix)
	api.GenerateMipmap(gl.TEXTURE_2D)
	api.BindTexture(gl.TEXTURE_2D, 0)

	texture := &Texture{api: api, id: id}
	if err := checkError(api, "create texture"); err != nil {
		texture.Release()
		return nil, err
	}
	return texture, nil
}

// Texture is an uploaded 2D texture
type Texture struct {
	api GL
	id  uint32
}

// Get returns the GL texture name
func (t *Texture) Get() uint32 {
	return t.id
}

// Bind binds the texture to a texture unit
func (t *Texture) Bind(unit model.TextureKind) {
	t.api.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	t.api.BindTexture(gl.TEXTURE_2D, t.id)
}

// Release deletes the texture
func (t *Texture) Release() {
	if t.id != 0 {
		t.api.DeleteTexture(t.id)
		t.id = 0
	}
}
