package imageio

import (
	"image"
	"image/draw"
)

// colorKeyTolerance bounds how far a pixel's channel may drift from the
// key color and still be treated as a match. The BMP/TGA/TIFF sources
// this exists for are frequently re-saved by lossy authoring tools that
// round a magenta key off by a few levels per channel, which would
// otherwise leave a visible fringe of near-key pixels around the
// intended transparent regions.
const colorKeyTolerance = 8

// ApplyColorKey makes every pixel within colorKeyTolerance of key fully
// transparent, returning a new RGBA image; the source image is untouched.
func ApplyColorKey(img image.Image, key RGB) image.Image {
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)

	p := rgba.Pix
	for i := 0; i+3 < len(p); i += 4 {
		if channelsMatch(p[i], p[i+1], p[i+2], key) {
			p[i+3] = 0
		}
	}

	return rgba
}

func channelsMatch(r, g, b uint8, key RGB) bool {
	return withinTolerance(r, key.R) && withinTolerance(g, key.G) && withinTolerance(b, key.B)
}

func withinTolerance(v, key uint8) bool {
	d := int(v) - int(key)
	if d < 0 {
		d = -d
	}
	return d <= colorKeyTolerance
}
