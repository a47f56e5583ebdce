package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/soocke/cpe-annotator/domain/annotation"
)

var red = color.NRGBA{R: 255, A: 255}

func TestAnnotate_DrawsOutlineOnly(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 20, 20))
	out := Annotate(base, []annotation.Rectangle{{X1: 2, Y1: 2, X2: 12, Y2: 12}}, red, 3)
	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"corner", 2, 2, true},
		{"far edge", 12, 7, true},
		{"inner stroke", 4, 7, true},
		{"inside", 7, 7, false},
		{"outside", 15, 15, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := out.NRGBAAt(tt.x, tt.y) == red
			if got != tt.want {
				t.Fatalf("pixel (%d,%d) red=%v want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
	if base.RGBAAt(2, 2).R != 0 {
		t.Fatalf("base image must not be modified")
	}
}

func TestDrawOutline_ClipsToBounds(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	DrawOutline(dst, annotation.Rectangle{X1: 3, Y1: 3, X2: 50, Y2: 50}, red, 1)
	if dst.NRGBAAt(3, 4) != red || dst.NRGBAAt(4, 3) != red {
		t.Fatalf("visible edges not drawn")
	}
}

func TestDrawOutline_DegenerateBox(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	DrawOutline(dst, annotation.Rectangle{X1: 2, Y1: 2, X2: 2, Y2: 2}, red, 3)
	if dst.NRGBAAt(2, 2) != red {
		t.Fatalf("single pixel box should be drawn")
	}
}

func TestDrawOutline_WideStrokeOnSmallBox(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	DrawOutline(dst, annotation.Rectangle{X1: 2, Y1: 2, X2: 4, Y2: 4}, red, 5)
	for y := 2; y <= 4; y++ {
		for x := 2; x <= 4; x++ {
			if dst.NRGBAAt(x, y) != red {
				t.Fatalf("pixel (%d,%d) should be filled by the stroke", x, y)
			}
		}
	}
	if dst.NRGBAAt(5, 5) == red || dst.NRGBAAt(1, 1) == red {
		t.Fatalf("stroke leaked outside the box")
	}
}
