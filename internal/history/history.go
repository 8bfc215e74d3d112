// Package history keeps the ordered list of committed shapes.
//
// Insertion order is paint order and undo order: the last shape is drawn on
// top and is the first to be undone. History does not render; callers redraw
// after a mutation.
package history

import (
	"slices"

	"github.com/example/paintbrush/internal/shape"
)

// History is not safe for concurrent use.
type History struct {
	shapes []shape.Shape
}

// New returns an empty history.
func New() *History {
	return &History{}
}

// Append adds s to the top.
func (h *History) Append(s shape.Shape) {
	h.shapes = append(h.shapes, s)
}

// Undo removes the most recent shape. It reports false when the history was
// already empty.
func (h *History) Undo() bool {
	if len(h.shapes) == 0 {
		return false
	}
	last := len(h.shapes) - 1
	h.shapes[last] = shape.Shape{}
	h.shapes = h.shapes[:last]
	return true
}

// Clear removes every shape and returns how many there were.
func (h *History) Clear() int {
	n := len(h.shapes)
	clear(h.shapes)
	h.shapes = h.shapes[:0]
	return n
}

// EraseAt removes every shape whose hit test contains (x, y) and returns the
// number removed.
func (h *History) EraseAt(x, y float64) int {
	n := len(h.shapes)
	h.shapes = slices.DeleteFunc(h.shapes, func(s shape.Shape) bool {
		return s.HitTest(x, y)
	})
	return n - len(h.shapes)
}

// Len returns the number of shapes.
func (h *History) Len() int { return len(h.shapes) }

// Shapes returns a copy of the shapes in paint order.
func (h *History) Shapes() []shape.Shape {
	return slices.Clone(h.shapes)
}

// All yields the shapes in paint order without copying.
func (h *History) All(yield func(shape.Shape) bool) {
	for _, s := range h.shapes {
		if !yield(s) {
			return
		}
	}
}
