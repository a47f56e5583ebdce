// Package overlay draws box outlines onto images. It serves both the saved
// previews and the on-screen frames.
package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/soocke/cpe-annotator/domain/annotation"
)

// Annotate returns a copy of base with every box outlined.
func Annotate(base image.Image, boxes []annotation.Rectangle, col color.Color, width int) *image.NRGBA {
	dst := imaging.Clone(base)
	for _, r := range boxes {
		DrawOutline(dst, r, col, width)
	}
	return dst
}

// DrawOutline strokes r onto dst. The stroke grows inward from the box edges
// and is clipped to dst.
func DrawOutline(dst draw.Image, r annotation.Rectangle, col color.Color, width int) {
	if width < 1 {
		width = 1
	}
	src := image.NewUniform(col)
	clip := dst.Bounds()
	outer := r.Bounds()
	for k := 0; k < width; k++ {
		// Literal, not image.Rect: an inverted ring must stay inverted.
		in := image.Rectangle{
			Min: image.Pt(outer.Min.X+k, outer.Min.Y+k),
			Max: image.Pt(outer.Max.X-k, outer.Max.Y-k),
		}
		if in.Dx() <= 0 || in.Dy() <= 0 {
			return
		}
		edges := []image.Rectangle{
			image.Rect(in.Min.X, in.Min.Y, in.Max.X, in.Min.Y+1), // top
			image.Rect(in.Min.X, in.Max.Y-1, in.Max.X, in.Max.Y), // bottom
			image.Rect(in.Min.X, in.Min.Y, in.Min.X+1, in.Max.Y), // left
			image.Rect(in.Max.X-1, in.Min.Y, in.Max.X, in.Max.Y), // right
		}
		for _, e := range edges {
			e = e.Intersect(clip)
			if !e.Empty() {
				draw.Draw(dst, e, src, image.Point{}, draw.Over)
			}
		}
	}
}
