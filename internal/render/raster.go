package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/example/paintbrush/internal/shape"
)

// Raster is a shape.Surface backed by an RGBA image. Coordinates are relative
// to the image's bounds origin. Outlines and fills are anti-aliased through
// golang.org/x/image/vector.
type Raster struct {
	img    *image.RGBA
	bg     color.RGBA
	col    color.RGBA
	stroke shape.StrokeStyle
	width  float64
	z      *vector.Rasterizer
}

// NewRaster wraps img. Clear paints it with bg.
func NewRaster(img *image.RGBA, bg color.RGBA) *Raster {
	b := img.Bounds()
	return &Raster{
		img:   img,
		bg:    bg,
		col:   color.RGBA{0, 0, 0, 255},
		width: shape.StrokeWidth,
		z:     vector.NewRasterizer(b.Dx(), b.Dy()),
	}
}

// Image returns the backing image.
func (r *Raster) Image() *image.RGBA { return r.img }

// SetBackground changes the color used by Clear.
func (r *Raster) SetBackground(bg color.RGBA) { r.bg = bg }

func (r *Raster) SetColor(c color.RGBA) { r.col = c }

func (r *Raster) SetStroke(style shape.StrokeStyle, width float64) {
	r.stroke = style
	r.width = width
}

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.bg), image.Point{}, draw.Src)
}

func (r *Raster) DrawLine(x1, y1, x2, y2 float64) {
	r.strokePath([]shape.Point{{X: x1, Y: y1}, {X: x2, Y: y2}})
}

func (r *Raster) DrawRect(x, y, w, h float64) {
	r.strokePath(rectPoints(x, y, w, h))
}

func (r *Raster) FillRect(x, y, w, h float64) {
	r.fillPolygon(rectPoints(x, y, w, h)[:4])
}

func (r *Raster) DrawOval(x, y, w, h float64) {
	r.strokePath(ellipsePoints(x, y, w, h, r.clipBox()))
}

func (r *Raster) FillOval(x, y, w, h float64) {
	r.fillPolygon(ellipsePoints(x, y, w, h, r.clipBox()))
}

func rectPoints(x, y, w, h float64) []shape.Point {
	return []shape.Point{
		{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}, {X: x, Y: y},
	}
}

// clipBox is the image area widened by the stroke, in raster coordinates.
// Geometry outside it cannot touch a pixel.
func (r *Raster) clipBox() box {
	b := r.img.Bounds()
	m := r.width + 2
	return box{x0: -m, y0: -m, x1: float64(b.Dx()) + m, y1: float64(b.Dy()) + m}
}

// strokePath strokes the polyline through pts. Solid strokes get square caps
// so consecutive edges join without notches. Dashed strokes carry the dash
// phase from one edge to the next. Edges are clipped before they reach the
// rasterizer, so the cost follows the visible length.
func (r *Raster) strokePath(pts []shape.Point) {
	if len(pts) < 2 || !finite(pts) || !r.begin() {
		return
	}
	hw := r.width / 2
	clip := r.clipBox()
	dash := r.stroke.Dash()
	if dash == nil {
		drawn := false
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			if a == b {
				continue
			}
			drawn = true
			if t0, t1, ok := clip.segment(a, b); ok {
				r.quad(lerp(a, b, t0), lerp(a, b, t1), hw, hw)
			}
		}
		if p := pts[0]; !drawn && clip.contains(p) {
			r.moveTo(p.X-hw, p.Y-hw)
			r.lineTo(p.X+hw, p.Y-hw)
			r.lineTo(p.X+hw, p.Y+hw)
			r.lineTo(p.X-hw, p.Y+hw)
			r.z.ClosePath()
		}
		r.flush()
		return
	}
	d := newDasher(dash)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		l := math.Hypot(b.X-a.X, b.Y-a.Y)
		if l == 0 || math.IsInf(l, 0) {
			continue
		}
		t0, t1, ok := clip.segment(a, b)
		if !ok {
			d.advance(l)
			continue
		}
		d.advance(t0 * l)
		// Walk the visible part in its own coordinates; offsets along a
		// very long edge lose the precision a dash needs.
		start, end := lerp(a, b, t0), lerp(a, b, t1)
		seg := end.Sub(start)
		sl := math.Hypot(seg.X, seg.Y)
		for t := 0.0; t < sl; {
			step := min(d.remain, sl-t)
			if d.on() {
				r.quad(lerp(start, end, t/sl), lerp(start, end, (t+step)/sl), hw, 0)
			}
			t += step
			d.advance(step)
		}
		d.advance(l - t1*l)
	}
	r.flush()
}

// fillPolygon fills the closed polygon through pts after clipping it to the
// visible area.
func (r *Raster) fillPolygon(pts []shape.Point) {
	if !finite(pts) {
		return
	}
	pts = r.clipBox().polygon(pts)
	if len(pts) < 3 || !r.begin() {
		return
	}
	r.moveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		r.lineTo(p.X, p.Y)
	}
	r.z.ClosePath()
	r.flush()
}

// quad adds the rectangle of half width hw around a-b, extended by ext past
// both ends. It reports false for a zero length edge.
func (r *Raster) quad(a, b shape.Point, hw, ext float64) bool {
	d := b.Sub(a)
	l := math.Hypot(d.X, d.Y)
	if l == 0 {
		return false
	}
	ux, uy := d.X/l, d.Y/l
	nx, ny := -uy*hw, ux*hw
	ax, ay := a.X-ux*ext, a.Y-uy*ext
	bx, by := b.X+ux*ext, b.Y+uy*ext
	r.moveTo(ax+nx, ay+ny)
	r.lineTo(bx+nx, by+ny)
	r.lineTo(bx-nx, by-ny)
	r.lineTo(ax-nx, ay-ny)
	r.z.ClosePath()
	return true
}

func (r *Raster) begin() bool {
	b := r.img.Bounds()
	if b.Empty() {
		return false
	}
	r.z.Reset(b.Dx(), b.Dy())
	r.z.DrawOp = draw.Over
	return true
}

func (r *Raster) flush() {
	r.z.Draw(r.img, r.img.Bounds(), image.NewUniform(r.col), image.Point{})
}

func (r *Raster) moveTo(x, y float64) { r.z.MoveTo(float32(x), float32(y)) }
func (r *Raster) lineTo(x, y float64) { r.z.LineTo(float32(x), float32(y)) }
