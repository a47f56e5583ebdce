package presenter

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/disintegration/imaging"

	"github.com/soocke/cpe-annotator/domain/annotation"
	"github.com/soocke/cpe-annotator/overlay"
	"github.com/soocke/cpe-annotator/ui/images"
	"github.com/soocke/cpe-annotator/ui/model"
)

// Session is the part of the annotation session driven by operator input.
type Session interface {
	model.SessionSource
	Start() error
	Done() bool
	Image() image.Image
	Boxes() []annotation.Rectangle
	Candidate() (annotation.Rectangle, bool)
	Classify(annotation.Classification) bool
	BeginBox(annotation.Point) bool
	UpdateBox(annotation.Point) bool
	FinishBox(annotation.Point) (annotation.Rectangle, bool)
	Undo() (annotation.Rectangle, bool)
	Advance() error
	Retreat() error
	Close() error
}

// AnnotationView is the surface the presenter renders to. Frames carry the
// committed boxes; the in-progress box is drawn by the view on top of the
// frame so dragging never re-encodes the image.
type AnnotationView interface {
	ShowFrame(img image.Image)
	ShowCandidate(r annotation.Rectangle, ok bool)
	SetControls(c model.Controls)
	Warn(title, msg string)
	Fail(title, msg string)
	Finish(msg string)
}

// Style configures how boxes are drawn on screen and the labels used in messages.
type Style struct {
	Outline       color.Color
	OutlineWidth  int
	MaxW, MaxH    int
	PositiveLabel string
	NegativeLabel string
}

// AnnotationPresenter maps operator commands and pointer events onto the
// session and redraws the view after each one.
type AnnotationPresenter struct {
	session Session
	view    AnnotationView
	style   Style
	logger  *slog.Logger

	source   image.Image // unscaled image the cached frame was built from
	scaled   image.Image
	viewport images.Viewport
	finished bool
}

func NewAnnotationPresenter(session Session, view AnnotationView, style Style, logger *slog.Logger) *AnnotationPresenter {
	if style.Outline == nil {
		style.Outline = color.NRGBA{R: 0xff, A: 0xff}
	}
	if style.OutlineWidth <= 0 {
		style.OutlineWidth = 3
	}
	return &AnnotationPresenter{session: session, view: view, style: style, logger: logger}
}

// Start loads the first image and renders it.
func (p *AnnotationPresenter) Start() {
	if p == nil || p.session == nil {
		return
	}
	p.handle("Start", p.session.Start())
}

// Previous moves back one image.
func (p *AnnotationPresenter) Previous() {
	if p.ready() {
		p.handle("Previous", p.session.Retreat())
	}
}

// Next commits the current image and advances.
func (p *AnnotationPresenter) Next() {
	if p.ready() {
		p.handle("Next", p.session.Advance())
	}
}

func (p *AnnotationPresenter) ClassifyPositive() { p.classify(annotation.Positive) }
func (p *AnnotationPresenter) ClassifyNegative() { p.classify(annotation.Negative) }

func (p *AnnotationPresenter) classify(c annotation.Classification) {
	if !p.ready() {
		return
	}
	if !p.session.Classify(c) && p.logger != nil {
		p.logger.Debug("classification ignored", "class", c.String())
	}
	p.refresh()
}

// UndoBox removes the most recent box.
func (p *AnnotationPresenter) UndoBox() {
	if !p.ready() {
		return
	}
	p.session.Undo()
	p.refresh()
}

// PointerDown starts a box at view coordinates (x, y).
func (p *AnnotationPresenter) PointerDown(x, y int) {
	if p.ready() && p.session.BeginBox(p.viewport.ToImage(x, y)) {
		p.showCandidate()
	}
}

// PointerMove updates the rubber band.
func (p *AnnotationPresenter) PointerMove(x, y int) {
	if p.ready() && p.session.UpdateBox(p.viewport.ToImage(x, y)) {
		p.showCandidate()
	}
}

// PointerUp finalizes the box.
func (p *AnnotationPresenter) PointerUp(x, y int) {
	if !p.ready() {
		return
	}
	if _, ok := p.session.FinishBox(p.viewport.ToImage(x, y)); ok {
		p.refresh()
	}
}

// Close terminates the session early, flushing committed work.
func (p *AnnotationPresenter) Close() {
	if p == nil || p.session == nil || p.finished {
		return
	}
	p.finished = true
	if err := p.session.Close(); err != nil {
		p.view.Fail("Save failed", err.Error())
	}
}

func (p *AnnotationPresenter) ready() bool {
	return p != nil && p.session != nil && p.view != nil && !p.finished
}

// handle surfaces the result of a navigation command and redraws.
func (p *AnnotationPresenter) handle(cmd string, err error) {
	var loadErr *annotation.LoadError
	switch {
	case err == nil:
	case errors.Is(err, annotation.ErrClassificationRequired):
		p.view.Warn("Notice", fmt.Sprintf("Please choose '%s' or '%s' first.", p.style.PositiveLabel, p.style.NegativeLabel))
		return
	case errors.Is(err, annotation.ErrSessionDone):
		return
	case errors.As(err, &loadErr):
		p.view.Fail("Cannot open image", loadErr.Error())
	default:
		if p.logger != nil {
			p.logger.Error("command failed", "command", cmd, "error", err)
		}
		if !p.session.Done() {
			p.view.Fail("Error", err.Error())
		}
	}
	if p.session.Done() {
		p.finished = true
		p.view.SetControls(model.DeriveControls(p.session))
		if err != nil {
			p.view.Fail("Save failed", err.Error())
			p.view.Finish("")
			return
		}
		p.view.Finish("All images annotated.")
		return
	}
	p.refresh()
}

func (p *AnnotationPresenter) refresh() {
	p.view.SetControls(model.DeriveControls(p.session))
	p.render()
}

// render composes the scaled base image with the committed boxes.
func (p *AnnotationPresenter) render() {
	defer p.showCandidate()
	src := p.session.Image()
	if src == nil {
		p.source, p.scaled = nil, nil
		p.viewport = images.Viewport{}
		p.view.ShowFrame(nil)
		return
	}
	if src != p.source {
		p.source = src
		p.scaled, p.viewport = images.ScaleToFit(src, p.style.MaxW, p.style.MaxH)
	}
	frame := imaging.Clone(p.scaled)
	for _, b := range p.session.Boxes() {
		overlay.DrawOutline(frame, p.viewport.ToView(b), p.style.Outline, p.style.OutlineWidth)
	}
	p.view.ShowFrame(frame)
}

// showCandidate pushes the in-progress box, in view coordinates, to the view.
func (p *AnnotationPresenter) showCandidate() {
	c, ok := p.session.Candidate()
	if !ok || p.session.Image() == nil {
		p.view.ShowCandidate(annotation.Rectangle{}, false)
		return
	}
	p.view.ShowCandidate(p.viewport.ToView(c), true)
}
