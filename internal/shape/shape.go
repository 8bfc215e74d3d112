// Package shape defines the drawable shapes committed to a canvas.
//
// A Shape is one of a fixed set of variants (see Kind). Values are immutable:
// every field is set by a constructor and only read through accessors, so a
// shape can be shared freely between the history and the render pass.
package shape

import (
	"fmt"
	"image/color"
	"math"

	"github.com/google/uuid"
)

// HitTolerance is the distance below which a point counts as touching a segment.
const HitTolerance = 5

// Kind identifies a shape variant.
type Kind int

const (
	KindSegment Kind = iota
	KindRectangle
	KindOval
)

func (k Kind) String() string {
	switch k {
	case KindSegment:
		return "Segment"
	case KindRectangle:
		return "Rectangle"
	case KindOval:
		return "Oval"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Point is a canvas-local coordinate.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Sub returns the vector p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Box is an axis-aligned box with non-negative width and height.
type Box struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside b. Edges count as inside.
func (b Box) Contains(p Point) bool {
	return p.X >= b.X && p.X <= b.X+b.W && p.Y >= b.Y && p.Y <= b.Y+b.H
}

// Normalize converts a box given by an origin and a signed extent into one
// with non-negative width and height covering the same area.
func Normalize(x, y, w, h float64) Box {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return Box{X: x, Y: y, W: w, H: h}
}

// Shape is an immutable committed drawable.
//
// For segments a and b are the endpoints. For rectangles and ovals a is the
// origin and b the signed extent (width, height) exactly as dragged.
type Shape struct {
	id    string
	kind  Kind
	a, b  Point
	style Style
}

// NewSegment returns a straight line from p1 to p2.
func NewSegment(p1, p2 Point, st Style) Shape {
	return Sketch(KindSegment, p1, p2, st).Commit()
}

// NewRectangle returns a rectangle with corner (x, y). Width and height may
// be negative for boxes dragged towards the origin.
func NewRectangle(x, y, w, h float64, st Style) Shape {
	return Sketch(KindRectangle, Pt(x, y), Pt(w, h), st).Commit()
}

// NewOval returns an ellipse inscribed in the box with corner (x, y).
func NewOval(x, y, w, h float64, st Style) Shape {
	return Sketch(KindOval, Pt(x, y), Pt(w, h), st).Commit()
}

// Sketch returns a shape of kind k without an identifier, laid out like the
// constructors: b is the second endpoint of a segment and the signed extent
// of a box. Sketches are cheap enough to rebuild on every pointer move.
func Sketch(k Kind, a, b Point, st Style) Shape {
	return Shape{kind: k, a: a, b: b, style: st}
}

// Commit returns a copy of s with a freshly generated identifier.
func (s Shape) Commit() Shape {
	s.id = uuid.NewString()
	return s
}

// ID returns the identifier assigned when the shape was committed. It is
// empty for sketches.
func (s Shape) ID() string { return s.id }

// Kind returns the variant tag.
func (s Shape) Kind() Kind { return s.kind }

// Style returns the appearance captured at creation.
func (s Shape) Style() Style { return s.style }

// Color is shorthand for s.Style().Color.
func (s Shape) Color() color.RGBA { return s.style.Color }

// Endpoints returns the two ends of a segment. For boxes it returns the
// origin and the signed extent.
func (s Shape) Endpoints() (Point, Point) { return s.a, s.b }

// Rect returns the origin and signed extent of a rectangle or oval as they
// were created. For segments it returns the first endpoint and the delta to
// the second.
func (s Shape) Rect() (x, y, w, h float64) {
	if s.kind == KindSegment {
		d := s.b.Sub(s.a)
		return s.a.X, s.a.Y, d.X, d.Y
	}
	return s.a.X, s.a.Y, s.b.X, s.b.Y
}

// Bounds returns the normalised bounding box of the shape.
func (s Shape) Bounds() Box {
	x, y, w, h := s.Rect()
	return Normalize(x, y, w, h)
}

// HitTest reports whether (x, y) lies on or inside the shape.
func (s Shape) HitTest(x, y float64) bool {
	p := Pt(x, y)
	switch s.kind {
	case KindSegment:
		return SegmentDistance(p, s.a, s.b) < HitTolerance
	case KindRectangle:
		return s.Bounds().Contains(p)
	case KindOval:
		return ovalContains(s.a.X, s.a.Y, s.b.X, s.b.Y, p)
	}
	panic(fmt.Sprintf("shape: unhandled kind %v", s.kind))
}

// Draw issues the drawing calls for the shape on dst.
func (s Shape) Draw(dst Surface) {
	dst.SetColor(s.style.Color)
	dst.SetStroke(s.style.Stroke, StrokeWidth)
	switch s.kind {
	case KindSegment:
		dst.DrawLine(s.a.X, s.a.Y, s.b.X, s.b.Y)
	case KindRectangle:
		b := s.Bounds()
		if s.style.Fill {
			dst.FillRect(b.X, b.Y, b.W, b.H)
		} else {
			dst.DrawRect(b.X, b.Y, b.W, b.H)
		}
	case KindOval:
		b := s.Bounds()
		if s.style.Fill {
			dst.FillOval(b.X, b.Y, b.W, b.H)
		} else {
			dst.DrawOval(b.X, b.Y, b.W, b.H)
		}
	default:
		panic(fmt.Sprintf("shape: unhandled kind %v", s.kind))
	}
}

func (s Shape) String() string {
	switch s.kind {
	case KindSegment:
		return fmt.Sprintf("Segment %v-%v %v", s.a, s.b, s.style.Stroke)
	default:
		fill := "outline"
		if s.style.Fill {
			fill = "filled"
		}
		return fmt.Sprintf("%v x=%g y=%g w=%g h=%g %v %s", s.kind, s.a.X, s.a.Y, s.b.X, s.b.Y, s.style.Stroke, fill)
	}
}

// SegmentDistance returns the distance from p to the finite segment a-b.
// A zero-length segment degrades to the distance between two points.
func SegmentDistance(p, a, b Point) float64 {
	d := b.Sub(a)
	l2 := d.X*d.X + d.Y*d.Y
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*d.X + (p.Y-a.Y)*d.Y) / l2
	t = max(0, min(1, t))
	return math.Hypot(p.X-(a.X+t*d.X), p.Y-(a.Y+t*d.Y))
}

// ovalContains evaluates the normalised ellipse equation. A zero radius has
// no interior, so only the centre of a fully collapsed oval is a hit.
func ovalContains(x, y, w, h float64, p Point) bool {
	cx, cy := x+w/2, y+h/2
	rx, ry := math.Abs(w)/2, math.Abs(h)/2
	if rx == 0 || ry == 0 {
		return rx == 0 && ry == 0 && p.X == cx && p.Y == cy
	}
	dx := (p.X - cx) / rx
	dy := (p.Y - cy) / ry
	return dx*dx+dy*dy <= 1
}
