package core

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gobuffalo/packd"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/devblok/koruview/model"
)

// GetPixels transforms a given image into RGBA8 pixels by drawing the
// decoded image onto a controlled RGBA canvas. Rows are returned bottom
// first, since OpenGL expects the first row to be at the bottom.
func GetPixels(img image.Image) []uint8 {
	bounds := img.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Src)

	rowLength := 4 * bounds.Dx()
	height := bounds.Dy()
	pixels := make([]uint8, rowLength*height)
	for y := 0; y < height; y++ {
		src := canvas.Pix[y*canvas.Stride : y*canvas.Stride+rowLength]
		copy(pixels[(height-1-y)*rowLength:], src)
	}
	return pixels
}

// DecodeTexture decodes an encoded image into a texture
func DecodeTexture(data []byte) (*model.Texture, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}
	return &model.Texture{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pix:    GetPixels(img),
	}, nil
}

// LoadTexture reads and decodes the named image
func LoadTexture(src packd.Finder, name string) (*model.Texture, error) {
	data, err := src.Find(name)
	if err != nil {
		return nil, err
	}
	tex, err := DecodeTexture(data)
	if err != nil {
		return nil, fmt.Errorf("texture decode %s: %w", name, err)
	}
	return tex, nil
}

// LoadTextureSet loads the four maps of a set concurrently.
// The result is indexed by model.TextureKind.
func LoadTextureSet(src packd.Finder, set TextureSet) ([model.TextureKindCount]*model.Texture, error) {
	var (
		textures [model.TextureKindCount]*model.Texture
		group    errgroup.Group
	)
	for kind, name := range set.Paths() {
		kind, name := kind, name
		group.Go(func() error {
			tex, err := LoadTexture(src, name)
			if err != nil {
				return err
			}
			textures[kind] = tex
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return textures, err
	}
	return textures, nil
}
