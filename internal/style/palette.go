package style

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/colornames"

	"github.com/example/paintbrush/internal/suggest"
)

// ErrUnknownColor is returned when a color token is neither a palette name, a
// CSS color name nor a #RRGGBB value.
var ErrUnknownColor = errors.New("unknown color")

// PaletteColor is a named swatch.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

var (
	paletteMu sync.RWMutex
	palette   = []color.RGBA{
		{0, 0, 0, 255},
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
	}
	paletteNames = []string{
		"Black",
		"Red",
		"Green",
		"Blue",
	}
)

// PaletteColors returns palette entries annotated with their display names.
func PaletteColors() []PaletteColor {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	out := make([]PaletteColor, len(palette))
	for i := range palette {
		out[i] = PaletteColor{Name: paletteNames[i], Color: palette[i]}
	}
	return out
}

// PaletteLen returns the number of swatches.
func PaletteLen() int {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return len(palette)
}

// PaletteColorAt returns the swatch at idx, clamped to the palette.
func PaletteColorAt(idx int) color.RGBA {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	if len(palette) == 0 {
		return color.RGBA{A: 255}
	}
	idx = max(0, min(idx, len(palette)-1))
	return palette[idx]
}

// EnsurePaletteColor makes sure col is present in the palette and returns its index.
func EnsurePaletteColor(col color.RGBA, name string) int {
	col.A = 255
	paletteMu.Lock()
	defer paletteMu.Unlock()
	for idx, existing := range palette {
		if existing == col {
			if name != "" && paletteNames[idx] == "" {
				paletteNames[idx] = name
			}
			return idx
		}
	}
	if name == "" {
		name = Hex(col)
	}
	palette = append(palette, col)
	paletteNames = append(paletteNames, name)
	return len(palette) - 1
}

// PaletteIndex returns the index of col in the palette or -1.
func PaletteIndex(col color.RGBA) int {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	for idx, existing := range palette {
		if existing == col {
			return idx
		}
	}
	return -1
}

// ColorName returns the palette name for col, or its hex form.
func ColorName(col color.RGBA) string {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	for idx, existing := range palette {
		if existing == col {
			return paletteNames[idx]
		}
	}
	return Hex(col)
}

// Hex formats col as #RRGGBB.
func Hex(col color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", col.R, col.G, col.B)
}

// ParseColor accepts a palette name, a CSS color name or #RRGGBB / #RGB.
// Palette names win over CSS names so "green" is the palette's pure green.
// The result is always opaque.
func ParseColor(s string) (color.RGBA, error) {
	token := strings.ToLower(strings.TrimSpace(s))
	if token == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	for _, entry := range PaletteColors() {
		if strings.EqualFold(entry.Name, token) {
			return entry.Color, nil
		}
	}
	if c, ok := colornames.Map[token]; ok {
		c.A = 255
		return c, nil
	}
	if strings.HasPrefix(token, "#") {
		hex := token[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) == 6 {
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("%w %q", ErrUnknownColor, s)
			}
			return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
		}
		return color.RGBA{}, fmt.Errorf("%w %q", ErrUnknownColor, s)
	}
	names := make([]string, 0, PaletteLen())
	for _, entry := range PaletteColors() {
		names = append(names, entry.Name)
	}
	return color.RGBA{}, fmt.Errorf("%w %q%s", ErrUnknownColor, s, suggest.Hint(token, names))
}

// ResetPalette replaces the palette with entries.
func ResetPalette(entries []PaletteColor) {
	paletteMu.Lock()
	defer paletteMu.Unlock()
	palette = make([]color.RGBA, len(entries))
	paletteNames = make([]string, len(entries))
	for i, e := range entries {
		palette[i] = e.Color
		paletteNames[i] = e.Name
	}
}
