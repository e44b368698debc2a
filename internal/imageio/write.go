package imageio

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/woozymasta/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Write saves an image to the given path, dispatching on its extension.
func Write(path string, img image.Image) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	switch ext {
	case "png":
		return png.Encode(f, img)
	case "bmp":
		return bmp.Encode(f, img)
	case "tga":
		return tga.Encode(f, img)
	case "tiff":
		return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported output format: %q", ext)
	}
}
