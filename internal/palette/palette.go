// Package palette resolves picture colors to RGB and holds the ordered list
// of colors offered by the color control.
package palette

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/pixelstorm/internal/picture"
)

// ErrUnknownColor indicates a color that is neither a known name nor a hex value.
var ErrUnknownColor = errors.New("unknown color")

// named maps the color names accepted in configuration to hex values.
var named = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"lime":    "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"pink":    "#ffc0cb",
	"brown":   "#a52a2a",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#c0c0c0",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"navy":    "#000080",
	"teal":    "#008080",
	"maroon":  "#800000",
	"olive":   "#808000",
}

// Resolve converts a color name or hex string to an RGB color.
func Resolve(c picture.Color) (colorful.Color, error) {
	s := strings.ToLower(strings.TrimSpace(string(c)))
	if hex, ok := named[s]; ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, string(c))
	}

	col, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q: %v", ErrUnknownColor, string(c), err)
	}
	return col, nil
}

// RGB returns the 8-bit channels of c.
func RGB(c picture.Color) (r, g, b uint8, err error) {
	col, err := Resolve(c)
	if err != nil {
		return 0, 0, 0, err
	}
	r, g, b = col.Clamped().RGB255()
	return r, g, b, nil
}

// Valid returns true if c can be resolved.
func Valid(c picture.Color) bool {
	_, err := Resolve(c)
	return err == nil
}

// Palette is an ordered set of colors.
type Palette []picture.Color

// Default returns the palette used when configuration provides none.
func Default() Palette {
	return Palette{
		"#000000", "#ffffff", "#f0f0f0", "#ff0000", "#00ff00", "#0000ff",
		"#ffff00", "#ffa500", "#800080", "#ffc0cb", "#a52a2a", "#808080",
		"#87ceeb", "#ff00ff", "#ff0080", "#80ff00", "#0080ff",
	}
}

// Index returns the position of c in the palette, or -1.
func (p Palette) Index(c picture.Color) int {
	for i, pc := range p {
		if pc == c {
			return i
		}
	}
	return -1
}

// Next returns the color after c, wrapping around. A color not in the
// palette yields the first entry.
func (p Palette) Next(c picture.Color) picture.Color {
	if len(p) == 0 {
		return c
	}
	return p[(p.Index(c)+1)%len(p)]
}

// Nearest returns the palette entry closest to c in Lab space.
func (p Palette) Nearest(c picture.Color) (picture.Color, error) {
	target, err := Resolve(c)
	if err != nil {
		return "", err
	}

	best := picture.Color("")
	bestDist := 0.0
	for _, pc := range p {
		col, err := Resolve(pc)
		if err != nil {
			return "", err
		}
		d := target.DistanceLab(col)
		if best == "" || d < bestDist {
			best, bestDist = pc, d
		}
	}
	if best == "" {
		return "", fmt.Errorf("%w: empty palette", ErrUnknownColor)
	}
	return best, nil
}

// Validate checks that every entry resolves.
func (p Palette) Validate() error {
	for _, c := range p {
		if _, err := Resolve(c); err != nil {
			return err
		}
	}
	return nil
}
