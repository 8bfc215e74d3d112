// Package render draws shape histories onto surfaces.
package render

import "github.com/example/paintbrush/internal/shape"

// Pass clears dst and draws shapes in order, so later shapes land on top.
// Running it twice over the same shapes yields the same frame.
func Pass(dst shape.Surface, shapes []shape.Shape) {
	dst.Clear()
	for _, s := range shapes {
		s.Draw(dst)
	}
}
