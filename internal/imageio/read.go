package imageio

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/woozymasta/png"
	_ "github.com/woozymasta/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Read loads an image from a supported file format, dispatching on the
// file's extension to the matching registered image.Decode codec.
func Read(path string) (image.Image, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !SupportedExtensions[ext] {
		return nil, fmt.Errorf("unsupported input format: %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}

	return img, nil
}

// GetImageSize reads only image dimensions without decoding full pixel data.
func GetImageSize(path string) (width, height int, err error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !SupportedExtensions[ext] {
		return 0, 0, fmt.Errorf("unsupported input format: %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = f.Close() }()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode config %q: %w", path, err)
	}

	return cfg.Width, cfg.Height, nil
}
