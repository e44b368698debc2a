package packer

// Pack places sizes, in caller order, across one or more bins of
// cfg.TextureWidth x cfg.TextureHeight, returning one Layout slice per
// bin. Inputs are never reordered -- the Index field of each returned
// Layout is the sprite's position in sizes, and within a single bin the
// order of Index values matches input order.
//
// Placement is greedy and first-fit: once a sprite is placed, it is never
// revised, and once a bin is opened because a placement failed, it is
// never revisited. Pack does not attempt an optimal packing.
func Pack(cfg Config, sizes []Size) ([][]Layout, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	for i, size := range sizes {
		fitsUpright := size.W <= cfg.TextureWidth && size.H <= cfg.TextureHeight
		fitsRotated := cfg.EnableRotate && size.H <= cfg.TextureWidth && size.W <= cfg.TextureHeight
		if !fitsUpright && !fitsRotated {
			return nil, &ImageTooLargeError{
				Index: i, Width: size.W, Height: size.H,
				TextureWidth: cfg.TextureWidth, TextureHeight: cfg.TextureHeight,
			}
		}
	}

	var results [][]Layout
	current := newBinState(cfg.TextureWidth, cfg.TextureHeight)

	for i, size := range sizes {
		if tryPlace(current, cfg, i, size) {
			continue
		}

		if len(current.layouts) > 0 {
			results = append(results, current.layouts)
		}
		current = newBinState(cfg.TextureWidth, cfg.TextureHeight)
		tryPlace(current, cfg, i, size)
	}

	if len(current.layouts) > 0 {
		results = append(results, current.layouts)
	}

	return results, nil
}

func validateConfig(cfg Config) error {
	w, h := cfg.TextureWidth, cfg.TextureHeight
	if w == 0 || h == 0 || w > MaxTextureSize || h > MaxTextureSize {
		return &BadTextureSizeError{Width: w, Height: h}
	}

	if cfg.Spacing >= w || cfg.Spacing >= h {
		return &SpacingTooLargeError{Spacing: cfg.Spacing, Width: w, Height: h}
	}

	return nil
}
