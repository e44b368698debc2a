// Package packer implements a deterministic greedy multi-bin rectangle
// packer: it places a caller-ordered list of sprite sizes into one or more
// fixed-size textures, optionally rotating a sprite 90 degrees when it
// doesn't fit upright, and opens a new bin whenever the current one is
// full. The algorithm is first-fit over an indexed free-rectangle list,
// not an optimal packer -- see freeSpaceIndex for the data structure that
// makes first-fit cheap.
package packer

import "fmt"

// MaxTextureSize is the largest width or height a texture may have.
const MaxTextureSize = 4096

// Size is an input sprite's raw pixel dimensions, before spacing.
type Size struct {
	W, H int
}

// Position is the top-left pixel coordinate of a placed sprite.
type Position struct {
	X, Y int
}

// Config controls how Pack lays sprites out across one or more textures.
type Config struct {
	// TextureWidth and TextureHeight are the fixed dimensions of every
	// bin this Pack call may open. Both must be in [1, MaxTextureSize].
	TextureWidth, TextureHeight int
	// Spacing is the minimum gutter, in pixels, reserved on the right and
	// bottom of every placed sprite. Must be in [0, min(W,H)-1].
	Spacing int
	// EnableRotate allows a sprite that doesn't fit upright to be placed
	// rotated 90 degrees instead of forcing a new bin.
	EnableRotate bool
}

// Layout describes where one input sprite ended up after packing.
type Layout struct {
	// Index is the sprite's 0-based position in the slice passed to Pack.
	Index int
	// Position is the top-left of the un-padded sprite inside its texture.
	Position Position
	// Rotated means the sprite occupies H x W instead of W x H, starting
	// at Position.
	Rotated bool
}

// BadTextureSizeError reports a texture dimension that is zero or exceeds
// MaxTextureSize.
type BadTextureSizeError struct {
	Width, Height int
}

func (e *BadTextureSizeError) Error() string {
	return fmt.Sprintf("packer: texture size %dx%d must be in [1, %d]", e.Width, e.Height, MaxTextureSize)
}

// SpacingTooLargeError reports a spacing value that leaves no room for any
// sprite in either dimension of the texture.
type SpacingTooLargeError struct {
	Spacing, Width, Height int
}

func (e *SpacingTooLargeError) Error() string {
	return fmt.Sprintf("packer: spacing %d too large for texture size %dx%d", e.Spacing, e.Width, e.Height)
}

// ImageTooLargeError reports an input sprite whose raw size (without
// spacing) cannot fit inside the configured texture.
type ImageTooLargeError struct {
	Index         int
	Width, Height int
	TextureWidth, TextureHeight int
}

func (e *ImageTooLargeError) Error() string {
	return fmt.Sprintf(
		"packer: input %d size %dx%d exceeds texture size %dx%d",
		e.Index, e.Width, e.Height, e.TextureWidth, e.TextureHeight,
	)
}
