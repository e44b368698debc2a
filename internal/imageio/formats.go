package imageio

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB stores an 8-bit per channel color, used as a chroma key for formats
// that don't reliably carry an alpha channel out of authoring tools.
type RGB struct{ R, G, B uint8 }

// Hex renders c as a lowercase "#rrggbb" string, the inverse of
// ParseHexRGB, so a resolved --alpha-key value can be echoed back to the
// user or recorded in a log line.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHexRGB parses a hex RGB color, accepting either the 3-digit CSS
// shorthand ("#f0f") or the full 6-digit form ("#ff00ff"), each with or
// without a leading '#'. Channels are parsed individually rather than as
// one packed integer so a malformed channel is reported by position.
func ParseHexRGB(s string) (RGB, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimPrefix(s, "#")

	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
		// already full-width
	default:
		return RGB{}, fmt.Errorf("alpha-key %q: want 3 or 6 hex digits, got %d", s, len(s))
	}

	r, err := parseHexChannel(s[0:2], "red")
	if err != nil {
		return RGB{}, err
	}
	g, err := parseHexChannel(s[2:4], "green")
	if err != nil {
		return RGB{}, err
	}
	b, err := parseHexChannel(s[4:6], "blue")
	if err != nil {
		return RGB{}, err
	}

	return RGB{R: r, G: g, B: b}, nil
}

func parseHexChannel(s, channel string) (uint8, error) {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("alpha-key %s channel %q: %w", channel, s, err)
	}
	return uint8(v), nil
}

// SupportedExtensions lists the file extensions Read and Write understand,
// lowercase and without a leading dot.
var SupportedExtensions = map[string]bool{
	"png":  true,
	"tga":  true,
	"bmp":  true,
	"tiff": true,
}
