package graphics

import (
	"errors"
	"fmt"
	"image/color"

	"doomlike/internal/config"
)

// ColorID is an index into the palette. The renderer only ever deals in
// ColorIDs; RGB values are looked up when a frame leaves the renderer.
type ColorID uint8

const (
	Yellow ColorID = iota
	DarkYellow
	Green
	DarkGreen
	Cyan
	DarkCyan
	Brown
	DarkBrown
	Background

	NumColors = int(Background) + 1
)

var colorNames = [NumColors]string{
	"yellow", "dark_yellow", "green", "dark_green",
	"cyan", "dark_cyan", "brown", "dark_brown", "background",
}

// String returns the palette name of the colour.
func (c ColorID) String() string {
	if int(c) < NumColors {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// Valid reports whether the id names a palette entry.
func (c ColorID) Valid() bool {
	return int(c) < NumColors
}

// ErrInvalidPalette is returned for palettes that cannot be resolved
var ErrInvalidPalette = errors.New("invalid palette")

// Palette maps each ColorID to an opaque RGBA value.
type Palette [NumColors]color.RGBA

// DefaultPalette returns the built-in nine colour table.
func DefaultPalette() Palette {
	return Palette{
		{255, 255, 0, 255},
		{160, 160, 0, 255},
		{0, 255, 0, 255},
		{0, 160, 0, 255},
		{0, 255, 255, 255},
		{0, 160, 160, 255},
		{160, 100, 0, 255},
		{110, 50, 0, 255},
		{0, 60, 130, 255},
	}
}

// PaletteFromConfig builds a palette from the config entries. The entry
// order defines the ColorID, so exactly NumColors entries are required.
func PaletteFromConfig(cfg config.PaletteConfig) (Palette, error) {
	var pal Palette
	if len(cfg.Colors) != NumColors {
		return pal, fmt.Errorf("%w: expected %d colors, got %d", ErrInvalidPalette, NumColors, len(cfg.Colors))
	}
	for i, entry := range cfg.Colors {
		for _, v := range entry.RGB {
			if v < 0 || v > 255 {
				return pal, fmt.Errorf("%w: color %d (%s) component %d out of range", ErrInvalidPalette, i, entry.Name, v)
			}
		}
		pal[i] = color.RGBA{uint8(entry.RGB[0]), uint8(entry.RGB[1]), uint8(entry.RGB[2]), 255}
	}
	return pal, nil
}

// RGBA resolves a colour id; unknown ids resolve to the background.
func (p *Palette) RGBA(c ColorID) color.RGBA {
	if !c.Valid() {
		return p[Background]
	}
	return p[c]
}
