package report

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"forest-coverage/internal/classify"
	"forest-coverage/internal/config"
)

// Palette maps each category to the color used in the control image.
type Palette struct {
	Pink       color.RGBA
	MidPurple  color.RGBA
	DarkPurple color.RGBA
	Green      color.RGBA
}

// DefaultPalette is the palette of the forest monitor map layer.
var DefaultPalette = Palette{
	Pink:       color.RGBA{222, 77, 131, 255},
	MidPurple:  color.RGBA{167, 47, 163, 255},
	DarkPurple: color.RGBA{84, 23, 111, 255},
	Green:      color.RGBA{34, 139, 34, 255},
}

// Color returns the palette entry for c. ok is false for unclassified pixels.
func (p Palette) Color(c classify.Category) (color.RGBA, bool) {
	switch c {
	case classify.Pink:
		return p.Pink, true
	case classify.MidPurple:
		return p.MidPurple, true
	case classify.DarkPurple:
		return p.DarkPurple, true
	case classify.Green:
		return p.Green, true
	default:
		return color.RGBA{}, false
	}
}

// PaletteFromConfig parses the hex colors of cfg.
func PaletteFromConfig(cfg config.Palette) (Palette, error) {
	var p Palette
	var err error
	for _, entry := range []struct {
		name string
		hex  string
		dst  *color.RGBA
	}{
		{"pink", cfg.Pink, &p.Pink},
		{"mid_purple", cfg.MidPurple, &p.MidPurple},
		{"dark_purple", cfg.DarkPurple, &p.DarkPurple},
		{"green", cfg.Green, &p.Green},
	} {
		if *entry.dst, err = ParseHexColor(entry.hex); err != nil {
			return Palette{}, fmt.Errorf("palette %s: %w", entry.name, err)
		}
	}
	return p, nil
}

// ParseHexColor parses "#RRGGBB" or "RRGGBB".
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
