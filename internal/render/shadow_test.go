package render

import (
	"image"
	"image/color"
	"testing"
)

func TestDrawShadowDarkensOffsetArea(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 60, 60))
	white := color.RGBA{255, 255, 255, 255}
	fillImage(dst, white)

	sheet := image.Rect(10, 10, 40, 40)
	opts := ShadowOptions{Radius: 3, Offset: image.Pt(6, 6), Opacity: 0.5}
	DrawShadow(dst, sheet, opts)

	// Under the sheet, shifted by the offset, the shadow is at full strength.
	if got := dst.RGBAAt(43, 43); got.R >= 255 {
		t.Fatalf("expected shadow below the sheet corner, got %+v", got)
	}
	if got := dst.RGBAAt(25, 25); got.R > 140 {
		t.Fatalf("expected strong shadow inside offset area, got %+v", got)
	}
	if got := dst.RGBAAt(2, 2); got != white {
		t.Fatalf("pixel far from shadow changed: %+v", got)
	}
}

func TestDrawShadowNoOpacity(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	fill := color.RGBA{200, 100, 50, 255}
	fillImage(dst, fill)
	DrawShadow(dst, image.Rect(1, 1, 6, 6), ShadowOptions{Radius: 12, Offset: image.Pt(2, 2), Opacity: 0})
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := dst.RGBAAt(x, y); got != fill {
				t.Fatalf("pixel mismatch at (%d,%d): got %+v want %+v", x, y, got, fill)
			}
		}
	}
}

func TestBlurGrayZeroRadiusCopies(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 3))
	src.SetGray(1, 1, color.Gray{Y: 200})
	out := blurGray(src, 0)
	if out.GrayAt(1, 1).Y != 200 || out.GrayAt(0, 0).Y != 0 {
		t.Fatal("zero radius blur should copy")
	}
	out.SetGray(1, 1, color.Gray{Y: 1})
	if src.GrayAt(1, 1).Y != 200 {
		t.Fatal("blur result aliases the source")
	}
}

func fillImage(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}
