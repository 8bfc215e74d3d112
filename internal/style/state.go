// Package style holds the current drawing mode and the appearance applied to
// newly committed shapes.
package style

import (
	"fmt"
	"image/color"

	"github.com/example/paintbrush/internal/shape"
)

// State is the mutable selection owned by the interaction loop.
// It is not safe for concurrent use.
type State struct {
	mode   Mode
	color  color.RGBA
	stroke shape.StrokeStyle
	fill   bool
}

// NewState returns the startup selection: black, solid, no fill, Line mode.
func NewState() *State {
	return &State{mode: ModeLine, color: color.RGBA{0, 0, 0, 255}, stroke: shape.Solid}
}

func (s *State) Mode() Mode { return s.mode }
func (s *State) Color() color.RGBA { return s.color }
func (s *State) StrokeStyle() shape.StrokeStyle { return s.stroke }
func (s *State) Fill() bool { return s.fill }

// SetMode panics on a value outside the declared modes. Tokens from users are
// checked by ParseMode before they get here.
func (s *State) SetMode(m Mode) {
	if !m.Valid() {
		panic(fmt.Sprintf("style: invalid mode %d", int(m)))
	}
	s.mode = m
}

func (s *State) SetStrokeStyle(st shape.StrokeStyle) {
	if st != shape.Solid && st != shape.Dotted {
		panic(fmt.Sprintf("style: invalid stroke style %d", int(st)))
	}
	s.stroke = st
}

func (s *State) SetFill(on bool) { s.fill = on }

// SetColor stores c as an opaque color.
func (s *State) SetColor(c color.RGBA) {
	c.A = 255
	s.color = c
}

// Style returns the appearance a shape committed now would carry.
func (s *State) Style() shape.Style {
	return shape.Style{Color: s.color, Stroke: s.stroke, Fill: s.fill}
}

func (s *State) String() string {
	fill := "no fill"
	if s.fill {
		fill = "fill"
	}
	return fmt.Sprintf("mode=%v stroke=%v %s color=%s", s.mode, s.stroke, fill, ColorName(s.color))
}
