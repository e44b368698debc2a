package imageio

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func TestWriteReadRoundTripPNG(t *testing.T) {
	t.Parallel()

	img := solid(8, 6, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	path := filepath.Join(t.TempDir(), "sprite.png")

	if err := Write(path, img); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	b := got.Bounds()
	if b.Dx() != 8 || b.Dy() != 6 {
		t.Fatalf("round-tripped size = %dx%d, want 8x6", b.Dx(), b.Dy())
	}
}

func TestWriteReadRoundTripTGA(t *testing.T) {
	t.Parallel()

	img := solid(4, 4, color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	path := filepath.Join(t.TempDir(), "sprite.tga")

	if err := Write(path, img); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	b := got.Bounds()
	if b.Dx() != 4 || b.Dy() != 4 {
		t.Fatalf("round-tripped size = %dx%d, want 4x4", b.Dx(), b.Dy())
	}
}

func TestWriteUnsupportedFormat(t *testing.T) {
	t.Parallel()

	img := solid(2, 2, color.NRGBA{A: 255})
	err := Write(filepath.Join(t.TempDir(), "sprite.webp"), img)
	if err == nil {
		t.Fatal("expected error for unsupported output format")
	}
}

func TestParseHexRGB(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{"ff00ff", RGB{0xff, 0x00, 0xff}, false},
		{"#00FF00", RGB{0x00, 0xff, 0x00}, false},
		{"nope", RGB{}, true},
	}

	for _, tc := range tests {
		got, err := ParseHexRGB(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseHexRGB(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseHexRGB(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseHexRGB(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestApplyColorKeyZeroesMatchingAlpha(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 255, G: 0, B: 255, A: 255})
	img.Set(1, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	out := ApplyColorKey(img, RGB{R: 255, G: 0, B: 255})
	rgba, ok := out.(*image.RGBA)
	if !ok {
		t.Fatalf("ApplyColorKey returned %T, want *image.RGBA", out)
	}

	if a := rgba.RGBAAt(0, 0).A; a != 0 {
		t.Fatalf("keyed pixel alpha = %d, want 0", a)
	}
	if a := rgba.RGBAAt(1, 0).A; a != 255 {
		t.Fatalf("non-keyed pixel alpha = %d, want 255", a)
	}
}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}
