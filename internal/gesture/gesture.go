// Package gesture turns pointer press, drag and release events into shapes.
//
// A Machine is either Idle or Dragging. The current mode and style are read
// from a Selection at every event, so a change made mid-drag applies to
// whatever is committed next and never to shapes already in the history.
package gesture

import (
	"fmt"

	"github.com/example/paintbrush/internal/shape"
	"github.com/example/paintbrush/internal/style"
)

// Selection provides the current mode and style.
type Selection interface {
	Mode() style.Mode
	Style() shape.Style
}

// Recorder receives committed shapes and erase requests.
type Recorder interface {
	Append(s shape.Shape)
	EraseAt(x, y float64) int
}

// State is the gesture state.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Dragging:
		return "Dragging"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Machine is not safe for concurrent use.
type Machine struct {
	sel   Selection
	rec   Recorder
	state State
	// anchor is the drag start, or the last committed pencil point.
	anchor shape.Point
	// cursor is the latest pointer position while dragging.
	cursor shape.Point
}

// New returns an Idle machine reading its selection from sel and writing to rec.
func New(sel Selection, rec Recorder) *Machine {
	return &Machine{sel: sel, rec: rec}
}

// State returns Idle or Dragging.
func (m *Machine) State() State { return m.state }

// Anchor returns the current anchor point. It is only meaningful while dragging.
func (m *Machine) Anchor() shape.Point { return m.anchor }

// PointerDown starts a gesture at p. A press while already dragging restarts
// the gesture from p; the earlier press never saw its release.
// It reports whether the recorder changed.
func (m *Machine) PointerDown(p shape.Point) bool {
	m.state = Dragging
	m.anchor = p
	m.cursor = p
	if m.sel.Mode() == style.ModeEraser {
		return m.rec.EraseAt(p.X, p.Y) > 0
	}
	return false
}

// PointerMove handles a drag sample. Moves while Idle are ignored.
// It reports whether the recorder changed.
func (m *Machine) PointerMove(p shape.Point) bool {
	if m.state != Dragging {
		return false
	}
	m.cursor = p
	switch m.sel.Mode() {
	case style.ModePencil:
		m.rec.Append(shape.NewSegment(m.anchor, p, m.sel.Style()))
		m.anchor = p
		return true
	case style.ModeEraser:
		// Samples are not interpolated; a fast drag can skip over thin shapes.
		return m.rec.EraseAt(p.X, p.Y) > 0
	}
	return false
}

// PointerUp ends the gesture at p and commits the shape for the
// Line, Rectangle and Oval modes. Releases while Idle are ignored.
// It reports whether the recorder changed.
func (m *Machine) PointerUp(p shape.Point) bool {
	if m.state != Dragging {
		return false
	}
	m.state = Idle
	m.cursor = p
	s, ok := m.pending(p)
	if !ok {
		return false
	}
	m.rec.Append(s.Commit())
	return true
}

// Cancel drops an in-progress gesture without committing anything.
func (m *Machine) Cancel() {
	m.state = Idle
}

// Preview returns the shape that a release at the current pointer position
// would commit. It is false when Idle or when the mode commits nothing on
// release.
func (m *Machine) Preview() (shape.Shape, bool) {
	if m.state != Dragging {
		return shape.Shape{}, false
	}
	return m.pending(m.cursor)
}

func (m *Machine) pending(p shape.Point) (shape.Shape, bool) {
	a := m.anchor
	st := m.sel.Style()
	switch m.sel.Mode() {
	case style.ModeLine:
		return shape.Sketch(shape.KindSegment, a, p, st), true
	case style.ModeRectangle:
		return shape.Sketch(shape.KindRectangle, a, p.Sub(a), st), true
	case style.ModeOval:
		return shape.Sketch(shape.KindOval, a, p.Sub(a), st), true
	}
	return shape.Shape{}, false
}
