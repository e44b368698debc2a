package cli

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/woozymasta/rectbin/internal/imageio"
	"github.com/woozymasta/rectbin/internal/manifest"
	"github.com/woozymasta/rectbin/internal/packer"
)

// CmdPack packs images into one or more atlas textures plus a manifest.
type CmdPack struct {
	Name     string `short:"n" long:"name" description:"Atlas name (default: input directory name)" yaml:"name"`
	Force    bool   `short:"f" long:"force" description:"Overwrite existing output files" yaml:"force"`
	Skip     bool   `short:"u" long:"skip-unchanged" description:"Skip writing when inputs are unchanged" yaml:"skip_unchanged"`
	Width    int    `short:"W" long:"width" description:"Atlas texture width" default:"1024" yaml:"width"`
	Height   int    `short:"H" long:"height" description:"Atlas texture height" default:"1024" yaml:"height"`
	Spacing  int    `short:"g" long:"spacing" description:"Spacing in pixels between packed images" default:"0" yaml:"spacing"`
	Rotate   bool   `short:"R" long:"rotate" description:"Allow 90-degree rotation to improve packing" yaml:"rotate"`
	AlphaKey string `long:"alpha-key" description:"Color key as RRGGBB -> alpha=0 for bmp/tga/tiff" default:"ff00ff" yaml:"alpha_key"`

	GroupSeparator string `short:"s" long:"group-separator" description:"Split group name from filename at this separator" yaml:"group_separator"`
	GroupDirs      bool   `short:"d" long:"group-dirs" description:"Treat immediate subdirectories as groups" yaml:"group_dirs"`
	AlphaKeyOff    bool   `long:"alpha-key-off" description:"Disable color key transparency processing" yaml:"alpha_key_off"`
	AlphaKeyAll    bool   `long:"alpha-key-all" description:"Apply color key to all formats, including png" yaml:"alpha_key_all"`

	Args struct {
		Input  string `positional-arg-name:"input" description:"Input directory with images" required:"yes" yaml:"input_dir"`
		Output string `positional-arg-name:"output" description:"Output directory (default: input directory)" yaml:"output_dir"`
	} `positional-args:"yes" required:"yes" yaml:"args"`
}

// spriteFile is one discovered, decoded input image awaiting placement.
type spriteFile struct {
	image     image.Image
	path      string
	name      string
	groupName string
	width     int
	height    int
}

// Execute runs the pack command.
func (c *CmdPack) Execute(args []string) error {
	return runPack(c)
}

func runPack(opts *CmdPack) error {
	outputDir := opts.Args.Output
	if outputDir == "" {
		outputDir = opts.Args.Input
	}

	name := opts.Name
	if name == "" {
		absInput, err := filepath.Abs(opts.Args.Input)
		if err != nil {
			return fmt.Errorf("resolve input path: %w", err)
		}
		name = filepath.Base(absInput)
	}

	manifestPath := filepath.Join(outputDir, name+".rectbin.yaml")
	cachePath := filepath.Join(outputDir, name+".rectbinhash")

	alphaKeyRGB, err := imageio.ParseHexRGB(opts.AlphaKey)
	if err != nil {
		return fmt.Errorf("invalid --alpha-key: %w", err)
	}

	sprites, err := discoverSprites(opts, name, alphaKeyRGB)
	if err != nil {
		return err
	}
	if len(sprites) == 0 {
		return fmt.Errorf("no input images found in %q", opts.Args.Input)
	}

	seen := make(map[string]string, len(sprites))
	for _, s := range sprites {
		if prev, ok := seen[s.name]; ok {
			return fmt.Errorf("duplicate sprite name %q (paths: %q and %q); rename or enable grouping", s.name, prev, s.path)
		}
		seen[s.name] = s.path
	}

	var inputsHash uint64
	if opts.Skip {
		inputsHash, err = computeInputsHash(opts, sprites)
		if err != nil {
			return err
		}
		if shouldSkipPack(cachePath, manifestPath, inputsHash) {
			fmt.Printf("Inputs unchanged; skipping %s\n", manifestPath)
			return nil
		}
	}

	if !opts.Force {
		if _, err := os.Stat(manifestPath); err == nil {
			return fmt.Errorf("output file %q already exists (use --force)", manifestPath)
		}
	}

	cfg := packer.Config{
		TextureWidth:  opts.Width,
		TextureHeight: opts.Height,
		Spacing:       opts.Spacing,
		EnableRotate:  opts.Rotate,
	}

	sizes := make([]packer.Size, 0, len(sprites))
	for _, s := range sprites {
		sizes = append(sizes, packer.Size{W: s.width, H: s.height})
	}

	bins, err := packer.Pack(cfg, sizes)
	if err != nil {
		return fmt.Errorf("pack images: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	m := &manifest.Manifest{
		Name:        name,
		TextureSize: [2]int{cfg.TextureWidth, cfg.TextureHeight},
	}

	groupsMap := make(map[string][]manifest.SpriteEntry)
	var rootSprites []manifest.SpriteEntry

	for binIndex, layouts := range bins {
		texturePath := atlasFileName(name, binIndex)
		atlas := renderAtlas(cfg, layouts, sprites)
		if err := imageio.Write(filepath.Join(outputDir, texturePath), atlas); err != nil {
			return fmt.Errorf("write atlas %q: %w", texturePath, err)
		}
		m.Textures = append(m.Textures, manifest.TextureEntry{Path: texturePath})

		for _, layout := range layouts {
			sprite := sprites[layout.Index]
			entry := manifest.SpriteEntry{
				Name:     sprite.name,
				Texture:  binIndex,
				Position: [2]int{layout.Position.X, layout.Position.Y},
				Size:     [2]int{sprite.width, sprite.height},
				Rotated:  layout.Rotated,
			}

			if sprite.groupName != "" {
				groupsMap[sprite.groupName] = append(groupsMap[sprite.groupName], entry)
			} else {
				rootSprites = append(rootSprites, entry)
			}
		}
	}

	if len(groupsMap) > 0 {
		groupNames := make([]string, 0, len(groupsMap))
		for g := range groupsMap {
			groupNames = append(groupNames, g)
		}
		sort.Strings(groupNames)

		for _, g := range groupNames {
			m.Groups = append(m.Groups, manifest.SpriteGroup{Name: g, Sprites: groupsMap[g]})
		}
		m.Sprites = rootSprites
	} else {
		m.Sprites = rootSprites
	}

	if err := manifest.WriteFile(manifestPath, m); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	if opts.Skip && inputsHash != 0 {
		if err := writeCacheHash(cachePath, inputsHash); err != nil {
			return err
		}
	}

	fmt.Printf("Packed %d sprites from %s into %d texture(s) as %s\n", len(sprites), opts.Args.Input, len(bins), name)
	if !opts.AlphaKeyOff {
		fmt.Printf("Alpha key: %s\n", alphaKeyRGB.Hex())
	}
	fmt.Printf("Manifest: %s\n", manifestPath)

	return nil
}

// renderAtlas draws every placed sprite from one bin into a fresh RGBA image.
func renderAtlas(cfg packer.Config, layouts []packer.Layout, sprites []spriteFile) *image.RGBA {
	atlas := image.NewRGBA(image.Rect(0, 0, cfg.TextureWidth, cfg.TextureHeight))

	for _, layout := range layouts {
		src := sprites[layout.Index].image
		if layout.Rotated {
			src = rotate90RGBA(src)
		}

		dstRect := image.Rect(
			layout.Position.X, layout.Position.Y,
			layout.Position.X+src.Bounds().Dx(), layout.Position.Y+src.Bounds().Dy(),
		)
		draw.Draw(atlas, dstRect, src, src.Bounds().Min, draw.Src)
	}

	return atlas
}

// rotate90RGBA rotates an image 90 degrees clockwise into a new RGBA.
func rotate90RGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(h-1-y, x, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}

	return dst
}

// atlasFileName derives the nth atlas texture's output filename.
func atlasFileName(name string, index int) string {
	if index == 0 {
		return name + ".png"
	}
	return fmt.Sprintf("%s_%d.png", name, index)
}

// discoverSprites walks the input directory (optionally grouped) and decodes
// every recognized image into a spriteFile, in filename-sorted order. Files
// matching this pack run's own output naming are excluded so that packing
// into the input directory itself is idempotent across repeated runs.
func discoverSprites(opts *CmdPack, name string, alphaKey imageio.RGB) ([]spriteFile, error) {
	var sprites []spriteFile

	switch {
	case opts.GroupDirs:
		groups, err := readImageFilesFromDirs(opts.Args.Input, name)
		if err != nil {
			return nil, fmt.Errorf("read directories: %w", err)
		}

		groupNames := make([]string, 0, len(groups))
		for g := range groups {
			groupNames = append(groupNames, g)
		}
		sort.Strings(groupNames)

		for _, groupName := range groupNames {
			for _, file := range groups[groupName] {
				sf, err := loadSprite(file, groupName, opts, alphaKey)
				if err != nil {
					return nil, err
				}
				sprites = append(sprites, sf)
			}
		}

		rootFiles, err := readImageFiles(opts.Args.Input, name)
		if err != nil {
			return nil, fmt.Errorf("read root directory: %w", err)
		}
		for _, file := range rootFiles {
			sf, err := loadSprite(file, "", opts, alphaKey)
			if err != nil {
				return nil, err
			}
			sprites = append(sprites, sf)
		}

	case opts.GroupSeparator != "":
		files, err := readImageFiles(opts.Args.Input, name)
		if err != nil {
			return nil, fmt.Errorf("read input directory: %w", err)
		}
		for _, file := range files {
			baseName := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
			groupName, spriteName := splitGroupName(baseName, opts.GroupSeparator)

			sf, err := loadSpriteNamed(file, spriteName, groupName, opts, alphaKey)
			if err != nil {
				return nil, err
			}
			sprites = append(sprites, sf)
		}

	default:
		files, err := readImageFiles(opts.Args.Input, name)
		if err != nil {
			return nil, fmt.Errorf("read input directory: %w", err)
		}
		for _, file := range files {
			sf, err := loadSprite(file, "", opts, alphaKey)
			if err != nil {
				return nil, err
			}
			sprites = append(sprites, sf)
		}
	}

	return sprites, nil
}

func loadSprite(path, groupName string, opts *CmdPack, alphaKey imageio.RGB) (spriteFile, error) {
	baseName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return loadSpriteNamed(path, baseName, groupName, opts, alphaKey)
}

func loadSpriteNamed(path, spriteName, groupName string, opts *CmdPack, alphaKey imageio.RGB) (spriteFile, error) {
	img, err := imageio.Read(path)
	if err != nil {
		return spriteFile{}, fmt.Errorf("read image %q: %w", path, err)
	}

	img = applyColorKeyIfNeeded(img, path, opts, alphaKey)
	b := img.Bounds()

	return spriteFile{
		image:     img,
		path:      path,
		name:      spriteName,
		groupName: groupName,
		width:     b.Dx(),
		height:    b.Dy(),
	}, nil
}

func applyColorKeyIfNeeded(img image.Image, path string, opts *CmdPack, key imageio.RGB) image.Image {
	if opts.AlphaKeyOff {
		return img
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if opts.AlphaKeyAll || ext == "bmp" || ext == "tga" || ext == "tiff" {
		return imageio.ApplyColorKey(img, key)
	}

	return img
}

func readImageFiles(dir, name string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if isGeneratedOutput(e.Name(), name) {
			continue
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(e.Name()), "."))
		if imageio.SupportedExtensions[ext] {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(out)
	return out, nil
}

func readImageFilesFromDirs(rootDir, name string) (map[string][]string, error) {
	entries, err := os.ReadDir(rootDir)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]string)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		groupDir := filepath.Join(rootDir, e.Name())
		files, err := readImageFiles(groupDir, name)
		if err != nil {
			return nil, fmt.Errorf("read group directory %q: %w", groupDir, err)
		}
		if len(files) > 0 {
			groups[e.Name()] = files
		}
	}

	return groups, nil
}

// isGeneratedOutput reports whether filename looks like an atlas texture
// this pack run (or a prior one under the same name) would itself produce,
// so re-running pack with output==input never feeds its own output back in
// as an input.
func isGeneratedOutput(filename, name string) bool {
	if name == "" {
		return false
	}

	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	if stem == name {
		return true
	}

	prefix := name + "_"
	if !strings.HasPrefix(stem, prefix) {
		return false
	}

	suffix := stem[len(prefix):]
	if suffix == "" {
		return false
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func splitGroupName(filename, separator string) (groupName, spriteName string) {
	idx := strings.Index(filename, separator)
	if idx == -1 {
		return "", filename
	}
	return filename[:idx], filename[idx+len(separator):]
}
