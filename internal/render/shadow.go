package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow painted under the canvas sheet.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns a soft shadow that reads well on both light
// and dark window backdrops.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  6,
		Offset:  image.Pt(4, 4),
		Opacity: 0.45,
	}
}

// DrawShadow paints a blurred shadow of sheet onto dst. The sheet itself is
// not drawn; callers draw the canvas over it afterwards. The shadow is
// clipped to dst.
func DrawShadow(dst *image.RGBA, sheet image.Rectangle, opts ShadowOptions) {
	if dst == nil || sheet.Empty() || opts.Opacity <= 0 {
		return
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	padded := sheet.Inset(-radius)
	mask := image.NewGray(image.Rect(0, 0, padded.Dx(), padded.Dy()))
	inner := sheet.Sub(padded.Min)
	draw.Draw(mask, inner, image.NewUniform(color.Gray{Y: 255}), image.Point{}, draw.Src)
	blurred := blurGray(mask, radius)

	shadowAlpha := uint8(opacity*255 + 0.5)
	if shadowAlpha == 0 {
		return
	}
	target := padded.Add(opts.Offset)
	draw.DrawMask(dst, target, image.NewUniform(color.RGBA{0, 0, 0, shadowAlpha}), image.Point{}, blurred, image.Point{}, draw.Over)
}

// blurGray applies a separable box blur using running sums per row and column.
func blurGray(src *image.Gray, radius int) *image.Gray {
	bounds := src.Bounds()
	if radius <= 0 {
		out := image.NewGray(bounds)
		copy(out.Pix, src.Pix)
		return out
	}
	w, h := bounds.Dx(), bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(row[x])
		}
		out := tmp.Pix[y*tmp.Stride:]
		for x := 0; x < w; x++ {
			x0, x1 := max(x-radius, 0), min(x+radius, w-1)
			out[x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0, y1 := max(y-radius, 0), min(y+radius, h-1)
			dst.Pix[y*dst.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}
	return dst
}
