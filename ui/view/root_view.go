package view

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/cpe-annotator/domain/annotation"
	"github.com/soocke/cpe-annotator/ui/model"
	"github.com/soocke/cpe-annotator/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the operator commands the root view dispatches.
type Handlers struct {
	Previous, Next         func()
	Positive, Negative     func()
	Undo                   func()
	PointerDown, PointerUp func(x, y int)
	PointerMove            func(x, y int)
	Exit                   func()
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	logger        *slog.Logger
	positiveLabel string
	negativeLabel string
	outline       string
	outlineWidth  int

	// Subviews
	Session SessionStats
	Canvas  ImageCanvas

	// Widgets
	StateLabel    *LabelWidget
	ProgressLabel *LabelWidget
	prevBtn       *TButtonWidget
	positiveBtn   *TButtonWidget
	negativeBtn   *TButtonWidget
	undoBtn       *TButtonWidget
	nextBtn       *TButtonWidget

	onExit func()
}

// NewRootView prepares the window layout. outline is the Tk colour of the
// rubber band, drawn with outlineWidth pixels.
func NewRootView(positiveLabel, negativeLabel, outline string, outlineWidth int, logger *slog.Logger) *RootView {
	return &RootView{
		positiveLabel: positiveLabel,
		negativeLabel: negativeLabel,
		outline:       outline,
		outlineWidth:  outlineWidth,
		logger:        logger,
	}
}

// Build constructs the layout: status row, image canvas, button row.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	rv.onExit = h.Exit

	// Row 0: progress, state label, session stats
	rv.ProgressLabel = Label(Txt("0 / 0"), Width(40), Anchor("w"))
	Grid(rv.ProgressLabel, Row(0), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
	rv.StateLabel = Label(Txt("State: <none>"), Borderwidth(1), Relief("ridge"))
	Grid(rv.StateLabel, Row(0), Column(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.Session = NewSessionStats(0, 3)

	// Row 1: image
	rv.Canvas = NewImageCanvas(1, 5, rv.outline, rv.outlineWidth)
	rv.Canvas.OnPointer(h.PointerDown, h.PointerMove, h.PointerUp)

	// Row 2: buttons
	btnFrame := Frame()
	Grid(btnFrame, Row(2), Column(0), Columnspan(5), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	rv.prevBtn = TButton(Txt("Previous Image"), Style(theme.StylePrimaryButton), Command(h.Previous))
	rv.positiveBtn = TButton(Txt(rv.positiveLabel), Style(theme.StylePositiveButton), Command(h.Positive))
	rv.negativeBtn = TButton(Txt(rv.negativeLabel), Style(theme.StyleNegativeButton), Command(h.Negative))
	rv.undoBtn = TButton(Txt("Undo Box"), Style(theme.StylePrimaryButton), Command(h.Undo))
	rv.nextBtn = TButton(Txt("Next Image"), Style(theme.StylePrimaryButton), Command(h.Next))
	for i, b := range []*TButtonWidget{rv.prevBtn, rv.positiveBtn, rv.negativeBtn, rv.undoBtn, rv.nextBtn} {
		Grid(b, In(btnFrame), Row(0), Column(i), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	}

	// Keyboard shortcuts mirror the buttons.
	Bind(App, "<Left>", Command(h.Previous))
	Bind(App, "<Right>", Command(h.Next))
	Bind(App, "<Return>", Command(h.Next))
	Bind(App, "<KeyPress-c>", Command(h.Positive))
	Bind(App, "<KeyPress-n>", Command(h.Negative))
	Bind(App, "<Control-z>", Command(h.Undo))
}

// ShowFrame replaces the displayed image.
func (rv *RootView) ShowFrame(img image.Image) {
	if rv != nil && rv.Canvas != nil {
		rv.Canvas.Show(img)
	}
}

// ShowCandidate draws or clears the in-progress box.
func (rv *RootView) ShowCandidate(r annotation.Rectangle, ok bool) {
	if rv != nil && rv.Canvas != nil {
		rv.Canvas.ShowBand(r, ok)
	}
}

// SetControls mirrors session state onto the buttons and progress label.
func (rv *RootView) SetControls(c model.Controls) {
	if rv == nil || rv.nextBtn == nil {
		return
	}
	rv.ProgressLabel.Configure(Txt(c.Progress))
	rv.Canvas.SetDrawing(c.PointerActive)
	chosen := c.Class != annotation.Unset
	rv.positiveBtn.Configure(State(enabled(c.ClassEnabled)),
		Style(theme.ClassButtonStyle(true, c.Class == annotation.Positive, chosen)))
	rv.negativeBtn.Configure(State(enabled(c.ClassEnabled)),
		Style(theme.ClassButtonStyle(false, c.Class == annotation.Negative, chosen)))
	rv.undoBtn.Configure(State(enabled(c.UndoEnabled)))
	rv.prevBtn.Configure(State(enabled(c.PrevEnabled)))
	rv.nextBtn.Configure(State(enabled(c.NextEnabled)))
}

// Warn shows a non-fatal notice.
func (rv *RootView) Warn(title, msg string) {
	MessageBox(Icon("warning"), Title(title), Msg(msg))
}

// Fail shows an error dialog.
func (rv *RootView) Fail(title, msg string) {
	if rv.logger != nil {
		rv.logger.Error("ui error", "title", title, "message", msg)
	}
	MessageBox(Icon("error"), Title(title), Msg(msg))
}

// Finish announces completion, if msg is set, and closes the window.
func (rv *RootView) Finish(msg string) {
	if msg != "" {
		MessageBox(Icon("info"), Title("Done"), Msg(msg))
	}
	if rv.onExit != nil {
		rv.onExit()
	}
}

// SetStateLabel updates the state label text.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

// SetSession updates elapsed time and throughput.
func (rv *RootView) SetSession(elapsed time.Duration, committed int, perMinute float64) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.SetSession(elapsed, committed, perMinute)
}

func enabled(b bool) string {
	if b {
		return "normal"
	}
	return "disabled"
}
