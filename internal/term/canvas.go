// Package term runs the drawing board inside a terminal using tcell.
//
// Every terminal cell shows two canvas pixels stacked vertically with the
// upper half block glyph: the foreground is the upper pixel and the
// background the lower one. Canvas units are therefore one column wide and
// half a row tall.
package term

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/example/paintbrush/internal/render"
	"github.com/example/paintbrush/internal/shape"
)

const halfBlock = '▀'

// Canvas is a shape.Surface that can be blitted onto a tcell screen.
type Canvas struct {
	*render.Raster
	cols, rows int
}

// NewCanvas returns a canvas covering cols by rows terminal cells.
func NewCanvas(cols, rows int, bg color.RGBA) *Canvas {
	cols, rows = max(cols, 0), max(rows, 0)
	img := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	return &Canvas{Raster: render.NewRaster(img, bg), cols: cols, rows: rows}
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// CellToPoint converts a cell relative to the canvas origin into the canvas
// coordinate at the centre of that cell.
func CellToPoint(col, row int) shape.Point {
	return shape.Pt(float64(col)+0.5, float64(row)*2+1)
}

// Blit copies the canvas onto s with its top left cell at origin.
func (c *Canvas) Blit(s tcell.Screen, origin image.Point) {
	img := c.Image()
	for y := 0; y < c.rows; y++ {
		for x := 0; x < c.cols; x++ {
			top := img.RGBAAt(x, 2*y)
			bottom := img.RGBAAt(x, 2*y+1)
			st := tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
			s.SetContent(origin.X+x, origin.Y+y, halfBlock, nil, st)
		}
	}
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
