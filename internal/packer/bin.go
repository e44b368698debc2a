package packer

// binState holds the free-space index and accumulated layouts for a
// single texture. It is mutated only by tryPlace and is frozen the moment
// the packer opens the next bin -- callers outside this package never see
// a binState directly, only the Layout slice it accumulates.
type binState struct {
	free    *freeSpaceIndex
	layouts []Layout
}

func newBinState(w, h int) *binState {
	return &binState{free: newFreeSpaceIndex(w, h)}
}

// tryPlace attempts to place size (padded by cfg.Spacing) into bin,
// trying the upright orientation first and, if that fails and rotation is
// enabled and the rotated footprint could ever fit the texture, the
// rotated orientation next. It returns false without mutating bin if
// neither orientation fits.
func tryPlace(bin *binState, cfg Config, index int, size Size) bool {
	if size.W <= cfg.TextureWidth && size.H <= cfg.TextureHeight {
		padded := paddedFootprint(size.W, size.H, cfg)
		if rect, ok := bin.free.find(padded.W, padded.H); ok {
			bin.layouts = append(bin.layouts, Layout{Index: index, Position: Position{X: rect.X, Y: rect.Y}, Rotated: false})
			bin.free.removeIntersecting(Rect{X: rect.X, Y: rect.Y, W: padded.W, H: padded.H})
			return true
		}
	}

	if cfg.EnableRotate && size.H <= cfg.TextureWidth && size.W <= cfg.TextureHeight {
		rotated := paddedFootprint(size.H, size.W, cfg)
		if rect, ok := bin.free.find(rotated.W, rotated.H); ok {
			bin.layouts = append(bin.layouts, Layout{Index: index, Position: Position{X: rect.X, Y: rect.Y}, Rotated: true})
			bin.free.removeIntersecting(Rect{X: rect.X, Y: rect.Y, W: rotated.W, H: rotated.H})
			return true
		}
	}

	return false
}

// paddedFootprint computes the footprint of a w x h sprite plus spacing,
// clamped to the texture size so the final column/row of a bin can
// consume the entire remaining width/height even when spacing would
// otherwise overflow it.
func paddedFootprint(w, h int, cfg Config) Size {
	return Size{
		W: min(w+cfg.Spacing, cfg.TextureWidth),
		H: min(h+cfg.Spacing, cfg.TextureHeight),
	}
}
