package material

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadTextureBlob_PNG(t *testing.T) {
	blob := encodePNG(t, image.NewRGBA(image.Rect(0, 0, 2, 3)))

	tex, err := LoadTextureBlob(blob)
	if err != nil {
		t.Fatal(err)
	}

	if tex.Width != 2 || tex.Height != 3 {
		t.Fatalf("dims = %dx%d, want 2x3", tex.Width, tex.Height)
	}
	if tex.Format != RGBA8 {
		t.Fatalf("Format = %v, want RGBA8", tex.Format)
	}
	if len(tex.Data) != 2*3*4 {
		t.Fatalf("len(Data) = %d, want %d", len(tex.Data), 2*3*4)
	}
	if !tex.IsValid() {
		t.Fatal("expected a valid texture")
	}
}

func TestLoadTextureBlob_Malformed(t *testing.T) {
	if _, err := LoadTextureBlob([]byte("not an image")); err == nil {
		t.Fatal("expected an error decoding malformed data")
	}
}

func TestTexture_IsValid(t *testing.T) {
	var nilTex *Texture
	if nilTex.IsValid() {
		t.Fatal("nil texture must not be valid")
	}
	if (&Texture{}).IsValid() {
		t.Fatal("zero-dimension texture must not be valid")
	}
	if !(&Texture{Width: 1, Height: 1}).IsValid() {
		t.Fatal("texture with non-zero dims must be valid")
	}
}
