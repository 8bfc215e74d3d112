package render

import (
	"math"

	"github.com/example/paintbrush/internal/shape"
)

const (
	// flatness is the furthest, in pixels, a flattened ellipse edge may stray
	// from the curve.
	flatness    = 0.25
	maxArcDepth = 48
)

// box is an axis aligned clip rectangle.
type box struct {
	x0, y0, x1, y1 float64
}

func (c box) contains(p shape.Point) bool {
	return p.X >= c.x0 && p.X <= c.x1 && p.Y >= c.y0 && p.Y <= c.y1
}

func (c box) overlaps(x0, y0, x1, y1 float64) bool {
	return x0 <= c.x1 && x1 >= c.x0 && y0 <= c.y1 && y1 >= c.y0
}

// segment returns the parameter range of a-b that lies inside c
// (Liang-Barsky).
func (c box) segment(a, b shape.Point) (t0, t1 float64, ok bool) {
	t0, t1 = 0, 1
	dx, dy := b.X-a.X, b.Y-a.Y
	if math.IsInf(dx, 0) || math.IsInf(dy, 0) {
		return 0, 0, false
	}
	for _, e := range [4][2]float64{
		{-dx, a.X - c.x0},
		{dx, c.x1 - a.X},
		{-dy, a.Y - c.y0},
		{dy, c.y1 - a.Y},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
	}
	return t0, t1, t0 <= t1
}

// polygon clips the closed polygon pts to c (Sutherland-Hodgman).
func (c box) polygon(pts []shape.Point) []shape.Point {
	pts = clipHalf(pts, func(p shape.Point) float64 { return p.X - c.x0 })
	pts = clipHalf(pts, func(p shape.Point) float64 { return c.x1 - p.X })
	pts = clipHalf(pts, func(p shape.Point) float64 { return p.Y - c.y0 })
	return clipHalf(pts, func(p shape.Point) float64 { return c.y1 - p.Y })
}

// clipHalf keeps the part of the closed polygon where dist is not negative.
func clipHalf(pts []shape.Point, dist func(shape.Point) float64) []shape.Point {
	out := make([]shape.Point, 0, len(pts)+4)
	for i, b := range pts {
		a := pts[(i+len(pts)-1)%len(pts)]
		da, db := dist(a), dist(b)
		if (da < 0) != (db < 0) {
			out = append(out, lerp(a, b, da/(da-db)))
		}
		if db >= 0 {
			out = append(out, b)
		}
	}
	return out
}

func lerp(a, b shape.Point, t float64) shape.Point {
	return shape.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

func finite(pts []shape.Point) bool {
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}

// ellipsePoints flattens the ellipse inscribed in x, y, w, h into a closed
// polyline. Arcs are only subdivided while they can reach clip, so a huge
// ellipse costs about as much as one that fits the image. An arc that stays
// outside clip is replaced by its chord; both lie inside the arc's bounding
// box, so strokes and fills clipped to clip come out the same.
func ellipsePoints(x, y, w, h float64, clip box) []shape.Point {
	e := ellipse{cx: x + w/2, cy: y + h/2, rx: math.Abs(w / 2), ry: math.Abs(h / 2), clip: clip}
	if !finite([]shape.Point{{X: e.cx, Y: e.cy}, {X: e.rx, Y: e.ry}}) {
		return nil
	}
	e.pts = append(e.pts, e.at(0))
	for q := range 4 {
		t0 := float64(q) * math.Pi / 2
		t1 := t0 + math.Pi/2
		e.arc(t0, t1, e.at(t0), e.at(t1), 0)
	}
	return e.pts
}

type ellipse struct {
	cx, cy, rx, ry float64
	clip           box
	pts            []shape.Point
}

func (e *ellipse) at(t float64) shape.Point {
	return shape.Point{X: e.cx + e.rx*math.Cos(t), Y: e.cy + e.ry*math.Sin(t)}
}

// arc appends the points after p0 on the arc from t0 to t1. The arc stays
// within the bounding box of its chord widened by the sagitta, scaled per
// axis.
func (e *ellipse) arc(t0, t1 float64, p0, p1 shape.Point, depth int) {
	s := 1 - math.Cos((t1-t0)/2)
	ex, ey := e.rx*s, e.ry*s
	flat := ex <= flatness && ey <= flatness
	visible := e.clip.overlaps(
		min(p0.X, p1.X)-ex, min(p0.Y, p1.Y)-ey,
		max(p0.X, p1.X)+ex, max(p0.Y, p1.Y)+ey,
	)
	if flat || !visible || depth >= maxArcDepth {
		e.pts = append(e.pts, p1)
		return
	}
	tm := (t0 + t1) / 2
	pm := e.at(tm)
	e.arc(t0, tm, p0, pm, depth+1)
	e.arc(tm, t1, pm, p1, depth+1)
}

// dasher tracks the position inside a dash pattern.
type dasher struct {
	pattern []float64
	period  float64
	idx     int
	remain  float64
}

func newDasher(pattern []float64) *dasher {
	d := &dasher{pattern: pattern, remain: pattern[0]}
	for _, v := range pattern {
		d.period += v
	}
	return d
}

// on reports whether the pen is down at the current position.
func (d *dasher) on() bool { return d.idx%2 == 0 }

// advance moves the pattern forward by dist. Whole periods are skipped
// arithmetically.
func (d *dasher) advance(dist float64) {
	if dist < d.remain {
		d.remain -= dist
		return
	}
	dist -= d.remain
	d.next()
	dist = math.Mod(dist, d.period)
	for dist >= d.remain {
		dist -= d.remain
		d.next()
	}
	d.remain -= dist
}

func (d *dasher) next() {
	d.idx = (d.idx + 1) % len(d.pattern)
	d.remain = d.pattern[d.idx]
}
