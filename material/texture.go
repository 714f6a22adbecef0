package material

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Format identifies the pixel layout of a decoded Texture. Everything is
// normalized to 4-channel so that sampling code never special-cases
// channel count.
type Format int

const (
	Luminance8 Format = iota
	RGBA8
	Luminance32F
	RGBA32F
)

// Texture is a decoded image and its metadata. A zero-value Texture (or a
// nil pointer) is the "missing texture" sentinel; IsValid distinguishes it
// from a genuinely loaded one (spec section 7, "missing texture").
type Texture struct {
	Format Format
	Width  uint32
	Height uint32
	Data   []byte
}

func (t *Texture) IsValid() bool {
	return t != nil && t.Width > 0 && t.Height > 0
}

// LoadTextureBlob decodes an in-memory image into a Texture using the
// built-in decoder. Callers that need a format defaultImageDecode doesn't
// support should supply their own loader to TextureCache.GetOrLoad instead.
func LoadTextureBlob(data []byte) (*Texture, error) {
	return defaultImageDecode(bytes.NewReader(data))
}

// defaultImageDecode backs the caller-provided texture loader with stdlib
// PNG/JPEG plus x/image BMP/TIFF, avoiding the cgo image library the
// teacher used (spec section 6, "texture decode is caller-provided").
func defaultImageDecode(r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("material: decode texture: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	data := make([]byte, width*height*4)

	offset := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			data[offset] = byte(r >> 8)
			data[offset+1] = byte(g >> 8)
			data[offset+2] = byte(b >> 8)
			data[offset+3] = byte(a >> 8)
			offset += 4
		}
	}

	return &Texture{
		Format: RGBA8,
		Width:  uint32(width),
		Height: uint32(height),
		Data:   data,
	}, nil
}
