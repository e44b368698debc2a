package cli

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// CmdGenerate produces synthetic PNG images for exercising the packer
// without needing a real sprite sheet on hand.
type CmdGenerate struct {
	MinSize      int   `short:"m" long:"min-size" description:"Minimum image size" default:"16"`
	MaxSize      int   `short:"M" long:"max-size" description:"Maximum image size" default:"256"`
	Count        int   `short:"c" long:"count" description:"Number of images to generate" default:"10"`
	MaxRatio     int   `short:"r" long:"max-ratio" description:"Maximum side ratio (1=squares only)" default:"1"`
	AllowNonPow2 bool  `short:"n" long:"allow-non-pow2" description:"Allow non-power-of-2 sizes"`
	Seed         int64 `long:"seed" description:"Random seed (0=fixed seed 1)" default:"0"`

	Args struct {
		OutputDir string `positional-arg-name:"output" description:"Output directory for generated PNG files" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

// Execute runs the generate command.
func (c *CmdGenerate) Execute(args []string) error {
	return runGenerate(c)
}

func runGenerate(opts *CmdGenerate) error {
	if opts.MinSize <= 0 || opts.MaxSize <= 0 {
		return fmt.Errorf("min-size and max-size must be positive")
	}
	if opts.MinSize > opts.MaxSize {
		return fmt.Errorf("min-size must be <= max-size")
	}
	if opts.Count <= 0 {
		return fmt.Errorf("count must be positive")
	}
	if opts.MaxRatio < 1 {
		return fmt.Errorf("max-ratio must be >= 1")
	}

	if err := os.MkdirAll(opts.Args.OutputDir, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // Non-crypto randomness is fine for test data.

	for i := 0; i < opts.Count; i++ {
		width, height := generateSize(rng, opts)
		if err := generateImage(opts.Args.OutputDir, i, width, height, rng); err != nil {
			return fmt.Errorf("generate image %d: %w", i, err)
		}
	}

	fmt.Printf("Generated %d images in %s\n", opts.Count, opts.Args.OutputDir)
	return nil
}

func generateSize(rng *rand.Rand, opts *CmdGenerate) (width, height int) {
	size := opts.MinSize + rng.Intn(opts.MaxSize-opts.MinSize+1)

	if !opts.AllowNonPow2 {
		size = nextPowerOfTwo(size)
		if size > opts.MaxSize {
			size = prevPowerOfTwo(opts.MaxSize)
		}
	}

	if opts.MaxRatio == 1 {
		return size, size
	}

	ratio := 1 + rng.Intn(opts.MaxRatio)

	if rng.Intn(2) == 0 {
		width = size * ratio
		height = size
		if width > opts.MaxSize {
			width = opts.MaxSize
			if !opts.AllowNonPow2 {
				width = prevPowerOfTwo(opts.MaxSize)
			}
		}
	} else {
		width = size
		height = size * ratio
		if height > opts.MaxSize {
			height = opts.MaxSize
			if !opts.AllowNonPow2 {
				height = prevPowerOfTwo(opts.MaxSize)
			}
		}
	}

	if !opts.AllowNonPow2 {
		width = nextPowerOfTwo(width)
		height = nextPowerOfTwo(height)
		if width > opts.MaxSize {
			width = prevPowerOfTwo(opts.MaxSize)
		}
		if height > opts.MaxSize {
			height = prevPowerOfTwo(opts.MaxSize)
		}
	}

	return width, height
}

func generateImage(outputDir string, index, width, height int, rng *rand.Rand) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	bgColor := color.RGBA{R: randByte(rng), G: randByte(rng), B: randByte(rng), A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, bgColor)
		}
	}

	patternColor := color.RGBA{R: randByte(rng), G: randByte(rng), B: randByte(rng), A: 255}
	for y := 0; y < height; y++ {
		img.Set(0, y, patternColor)
		img.Set(width-1, y, patternColor)
	}
	for x := 0; x < width; x++ {
		img.Set(x, 0, patternColor)
		img.Set(x, height-1, patternColor)
	}

	drawDiagonal(img, patternColor)

	labelColor := color.RGBA{A: 128}
	labelSize := float64(min(width, height)) * 0.5
	drawCenteredLabel(img, fmt.Sprintf("%d", index+1), labelSize, labelColor)

	filename := filepath.Join(outputDir, fmt.Sprintf("sprite_%03d_%dx%d.png", index, width, height))
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	return nil
}

func drawDiagonal(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	x0, y0 := b.Min.X, b.Min.Y
	x1, y1 := b.Max.X-1, b.Max.Y-1

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	errTerm := dx - dy

	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * errTerm
		if e2 > -dy {
			errTerm -= dy
			x0 += sx
		}
		if e2 < dx {
			errTerm += dx
			y0 += sy
		}
	}
}

func drawCenteredLabel(img *image.RGBA, label string, size float64, c color.RGBA) {
	if size < 6 {
		return
	}

	tt, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return
	}
	defer func() { _ = face.Close() }()

	bounds, _ := font.BoundString(face, label)
	textW := (bounds.Max.X - bounds.Min.X).Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()

	b := img.Bounds()
	x := b.Min.X + (b.Dx()-textW)/2 - bounds.Min.X.Ceil()
	y := b.Min.Y + (b.Dy()-textH)/2 - bounds.Min.Y.Ceil()

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(label)
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	if n&(n-1) == 0 {
		return n
	}
	power := 1
	for power < n {
		power <<= 1
	}
	return power
}

func prevPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	power := 1
	for power*2 <= n {
		power <<= 1
	}
	return power
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func randByte(rng *rand.Rand) uint8 {
	return uint8(rng.Intn(256)) //nolint:gosec // Intn(256) always fits in uint8.
}
