package view

import (
	"image"

	"github.com/soocke/cpe-annotator/domain/annotation"
	"github.com/soocke/cpe-annotator/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	tagFrame = "frame"
	tagBand  = "band"
)

// ImageCanvas shows the composed annotation frame with the rubber band as a
// separate item on top, and reports pointer events in frame pixel coordinates.
type ImageCanvas interface {
	Show(img image.Image)
	ShowBand(r annotation.Rectangle, ok bool)
	SetDrawing(active bool)
	OnPointer(down, move, up func(x, y int))
}

type imageCanvas struct {
	canvas    *CanvasWidget
	prevPhoto *Img // last Tk photo image instance
	outline   string
	width     int
	band      annotation.Rectangle
	hasBand   bool
}

// Internal state tracks the current photo so we can dispose the old image
// before replacing it, preventing accumulation of off-screen image data.

// NewImageCanvas creates the canvas and grids it at row spanning cols columns.
// Band outlines use the given Tk colour and stroke width.
func NewImageCanvas(row, cols int, outline string, width int) ImageCanvas {
	if width < 1 {
		width = 1
	}
	c := Canvas(Width(640), Height(360), Borderwidth(0), Highlightthickness(0), Background("black"))
	Grid(c, Row(row), Column(0), Columnspan(cols), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	return &imageCanvas{canvas: c, outline: outline, width: width}
}

func (v *imageCanvas) Show(img image.Image) {
	if v.canvas == nil {
		return
	}
	v.canvas.Delete(tagFrame)
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
		v.prevPhoto = nil
	}
	if img == nil {
		return
	}
	b := img.Bounds()
	v.prevPhoto = NewPhoto(Data(images.EncodePNG(img)))
	v.canvas.Configure(Width(b.Dx()), Height(b.Dy()))
	v.canvas.CreateImage(0, 0, Image(v.prevPhoto), Anchor("nw"), Tags(tagFrame))
	// A new image item stacks above the band; put the band back on top.
	if v.hasBand {
		v.drawBand()
	}
}

func (v *imageCanvas) ShowBand(r annotation.Rectangle, ok bool) {
	if v.canvas == nil {
		return
	}
	v.band, v.hasBand = r, ok
	v.drawBand()
}

func (v *imageCanvas) drawBand() {
	v.canvas.Delete(tagBand)
	if !v.hasBand {
		return
	}
	x1, y1, x2, y2 := bandCoords(v.band, v.width)
	v.canvas.CreateRectangle(x1, y1, x2, y2, Outline(v.outline), Width(v.width), Tags(tagBand))
}

func (v *imageCanvas) SetDrawing(active bool) {
	if v.canvas != nil {
		v.canvas.Configure(Cursor(pointerCursor(active)))
	}
}

func (v *imageCanvas) OnPointer(down, move, up func(x, y int)) {
	if v.canvas == nil {
		return
	}
	Bind(v.canvas, "<ButtonPress-1>", Command(func(e *Event) { down(e.X, e.Y) }))
	Bind(v.canvas, "<B1-Motion>", Command(func(e *Event) { move(e.X, e.Y) }))
	Bind(v.canvas, "<ButtonRelease-1>", Command(func(e *Event) { up(e.X, e.Y) }))
}

// bandCoords places a Tk rectangle so its centred stroke covers the same
// pixels as the inward outline drawn into frames.
func bandCoords(r annotation.Rectangle, width int) (x1, y1, x2, y2 float64) {
	h := float64(width) / 2
	return float64(r.X1) + h, float64(r.Y1) + h, float64(r.X2+1) - h, float64(r.Y2+1) - h
}

// pointerCursor is the canvas cursor: a crosshair while boxes can be drawn.
func pointerCursor(active bool) string {
	if active {
		return "crosshair"
	}
	return "arrow"
}
