package shape

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/example/paintbrush/internal/suggest"
)

// StrokeWidth is the line width every shape is stroked with.
const StrokeWidth = 2

// DashLength is the on and off length of the dotted stroke pattern.
const DashLength = 5

// ErrUnknownStrokeStyle is returned when a stroke style token is not recognised.
var ErrUnknownStrokeStyle = errors.New("unknown stroke style")

// StrokeStyle selects how outlines are stroked.
type StrokeStyle int

const (
	Solid StrokeStyle = iota
	Dotted
)

var strokeNames = [...]string{
	Solid:  "Solid",
	Dotted: "Dotted",
}

func (s StrokeStyle) String() string {
	if s < 0 || int(s) >= len(strokeNames) {
		return fmt.Sprintf("StrokeStyle(%d)", int(s))
	}
	return strokeNames[s]
}

// StrokeStyles returns every stroke style in declaration order.
func StrokeStyles() []StrokeStyle {
	return []StrokeStyle{Solid, Dotted}
}

// Dash returns the dash pattern for the stroke style, or nil for a solid line.
func (s StrokeStyle) Dash() []float64 {
	if s == Dotted {
		return []float64{DashLength, DashLength}
	}
	return nil
}

// ParseStrokeStyle converts a case-insensitive token such as "dotted" into a
// StrokeStyle.
func ParseStrokeStyle(token string) (StrokeStyle, error) {
	t := strings.TrimSpace(token)
	for i, name := range strokeNames {
		if strings.EqualFold(name, t) {
			return StrokeStyle(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q%s", ErrUnknownStrokeStyle, token, suggest.Hint(t, strokeNames[:]))
}

// Style is the appearance copied into a shape when it is committed.
type Style struct {
	Color  color.RGBA
	Stroke StrokeStyle
	// Fill only affects closed shapes.
	Fill bool
}

// DefaultStyle returns opaque black, solid, unfilled.
func DefaultStyle() Style {
	return Style{Color: color.RGBA{0, 0, 0, 255}, Stroke: Solid}
}
