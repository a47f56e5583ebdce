package images

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/soocke/cpe-annotator/domain/annotation"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// Viewport maps between displayed (possibly scaled) pixels and original image pixels.
type Viewport struct {
	ImageW, ImageH int
	ViewW, ViewH   int
}

// Scale returns view pixels per image pixel.
func (v Viewport) Scale() float64 {
	if v.ImageW == 0 {
		return 1
	}
	return float64(v.ViewW) / float64(v.ImageW)
}

// ToImage maps a view coordinate to image space, clamped to the image bounds.
func (v Viewport) ToImage(x, y int) annotation.Point {
	if v.ViewW <= 0 || v.ViewH <= 0 {
		return annotation.Point{}
	}
	ix := int(float64(x)*float64(v.ImageW)/float64(v.ViewW) + 0.5)
	iy := int(float64(y)*float64(v.ImageH)/float64(v.ViewH) + 0.5)
	return annotation.Point{X: clampInt(ix, 0, v.ImageW-1), Y: clampInt(iy, 0, v.ImageH-1)}
}

// ToView maps an image-space box to view space.
func (v Viewport) ToView(r annotation.Rectangle) annotation.Rectangle {
	s := v.Scale()
	if s == 1 {
		return r
	}
	m := func(c int) int { return int(float64(c)*s + 0.5) }
	return annotation.Rectangle{X1: m(r.X1), Y1: m(r.Y1), X2: m(r.X2), Y2: m(r.Y2)}
}

// ScaleToFit scales src down so it fits within maxW x maxH preserving aspect ratio.
// A non-positive bound or an image that already fits is returned unchanged.
func ScaleToFit(src image.Image, maxW, maxH int) (image.Image, Viewport) {
	if src == nil {
		return nil, Viewport{}
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	vp := Viewport{ImageW: w, ImageH: h, ViewW: w, ViewH: h}
	if maxW <= 0 || maxH <= 0 || (w <= maxW && h <= maxH) {
		return src, vp
	}
	dst := imaging.Fit(src, maxW, maxH, imaging.Linear)
	vp.ViewW, vp.ViewH = dst.Bounds().Dx(), dst.Bounds().Dy()
	return dst, vp
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
