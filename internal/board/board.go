// Package board ties the style selection, the shape history and the gesture
// machine together for a host UI.
//
// Every operation that changes the history calls the change listener, which
// hosts use to schedule a redraw. Board is owned by one goroutine, the host's
// event loop.
package board

import (
	"fmt"
	"image/color"

	"github.com/example/paintbrush/internal/gesture"
	"github.com/example/paintbrush/internal/history"
	"github.com/example/paintbrush/internal/render"
	"github.com/example/paintbrush/internal/shape"
	"github.com/example/paintbrush/internal/style"
)

// Board is the drawing engine exposed to front ends.
type Board struct {
	style    *style.State
	history  *history.History
	machine  *gesture.Machine
	onChange func()
}

// Option modifies a Board during creation.
type Option func(*Board)

// WithMode sets the initial drawing mode.
func WithMode(m style.Mode) Option { return func(b *Board) { b.style.SetMode(m) } }

// WithStrokeStyle sets the initial stroke style.
func WithStrokeStyle(s shape.StrokeStyle) Option {
	return func(b *Board) { b.style.SetStrokeStyle(s) }
}

// WithFill sets the initial fill flag.
func WithFill(on bool) Option { return func(b *Board) { b.style.SetFill(on) } }

// WithColor sets the initial color.
func WithColor(c color.RGBA) Option { return func(b *Board) { b.style.SetColor(c) } }

// WithOnChange registers a callback invoked after every history mutation.
func WithOnChange(fn func()) Option { return func(b *Board) { b.onChange = fn } }

// New creates an empty board with the default selection and the provided options.
func New(opts ...Option) *Board {
	b := &Board{
		style:   style.NewState(),
		history: history.New(),
	}
	b.machine = gesture.New(b.style, b.history)
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *Board) changed(ok bool) bool {
	if ok && b.onChange != nil {
		b.onChange()
	}
	return ok
}

// PointerDown forwards a press. It reports whether the history changed.
func (b *Board) PointerDown(x, y float64) bool {
	return b.changed(b.machine.PointerDown(shape.Pt(x, y)))
}

// PointerMove forwards a drag sample. It reports whether the history changed.
func (b *Board) PointerMove(x, y float64) bool {
	return b.changed(b.machine.PointerMove(shape.Pt(x, y)))
}

// PointerUp forwards a release. It reports whether the history changed.
func (b *Board) PointerUp(x, y float64) bool {
	return b.changed(b.machine.PointerUp(shape.Pt(x, y)))
}

// Dragging reports whether a gesture is in progress.
func (b *Board) Dragging() bool { return b.machine.State() == gesture.Dragging }

// CancelGesture drops the in-progress gesture.
func (b *Board) CancelGesture() { b.machine.Cancel() }

// Preview returns the rubber band shape for the current drag, if any.
func (b *Board) Preview() (shape.Shape, bool) { return b.machine.Preview() }

// Undo removes the most recent shape. Undo on an empty board is a no-op.
func (b *Board) Undo() bool { return b.changed(b.history.Undo()) }

// Clear removes every shape and returns how many were removed.
func (b *Board) Clear() int {
	n := b.history.Clear()
	b.changed(n > 0)
	return n
}

// EraseAt removes every shape under (x, y) regardless of the current mode.
func (b *Board) EraseAt(x, y float64) int {
	n := b.history.EraseAt(x, y)
	b.changed(n > 0)
	return n
}

// Shapes returns a snapshot of the history in paint order.
func (b *Board) Shapes() []shape.Shape { return b.history.Shapes() }

// Len returns the number of committed shapes.
func (b *Board) Len() int { return b.history.Len() }

func (b *Board) Mode() style.Mode { return b.style.Mode() }
func (b *Board) StrokeStyle() shape.StrokeStyle { return b.style.StrokeStyle() }
func (b *Board) Fill() bool { return b.style.Fill() }
func (b *Board) Color() color.RGBA { return b.style.Color() }
func (b *Board) Style() shape.Style { return b.style.Style() }

// Selection describes the current mode and style for status lines.
func (b *Board) Selection() string { return b.style.String() }

func (b *Board) SetMode(m style.Mode) { b.style.SetMode(m) }
func (b *Board) SetStrokeStyle(s shape.StrokeStyle) { b.style.SetStrokeStyle(s) }
func (b *Board) SetFill(on bool) { b.style.SetFill(on) }
func (b *Board) SetColor(c color.RGBA) { b.style.SetColor(c) }

// SelectMode parses token and makes it the current mode.
func (b *Board) SelectMode(token string) error {
	m, err := style.ParseMode(token)
	if err != nil {
		return fmt.Errorf("select mode: %w", err)
	}
	b.style.SetMode(m)
	return nil
}

// SelectStrokeStyle parses token and makes it the current stroke style.
func (b *Board) SelectStrokeStyle(token string) error {
	s, err := shape.ParseStrokeStyle(token)
	if err != nil {
		return fmt.Errorf("select stroke: %w", err)
	}
	b.style.SetStrokeStyle(s)
	return nil
}

// SelectColor parses token and makes it the current color.
func (b *Board) SelectColor(token string) error {
	c, err := style.ParseColor(token)
	if err != nil {
		return fmt.Errorf("select color: %w", err)
	}
	b.style.SetColor(c)
	return nil
}

// Render redraws the whole history onto dst, followed by the drag preview.
func (b *Board) Render(dst shape.Surface) {
	render.Pass(dst, b.history.Shapes())
	if p, ok := b.machine.Preview(); ok {
		p.Draw(dst)
	}
}
