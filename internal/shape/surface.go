package shape

import "image/color"

// Surface is the 2D drawing backend shapes are rendered onto.
//
// Boxes passed to the rectangle and oval methods are already normalised:
// width and height are never negative.
type Surface interface {
	SetColor(c color.RGBA)
	SetStroke(style StrokeStyle, width float64)
	DrawLine(x1, y1, x2, y2 float64)
	DrawRect(x, y, w, h float64)
	FillRect(x, y, w, h float64)
	DrawOval(x, y, w, h float64)
	FillOval(x, y, w, h float64)
	Clear()
}
