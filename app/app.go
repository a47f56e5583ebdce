package app

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/cpe-annotator/ui/presenter"
	"github.com/soocke/cpe-annotator/ui/theme"
	"github.com/soocke/cpe-annotator/ui/view"
)

const (
	tick = 500 * time.Millisecond
)

type app struct {
	c       *AppContainer
	width   int
	height  int
	afterID string
	exiting bool

	root      *view.RootView
	annotator *presenter.AnnotationPresenter
	loop      *presenter.Loop
}

func NewApp(title string, width, height int, c *AppContainer) *app {
	a := &app{c: c, width: width, height: height}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the window, shows the first image and blocks in the Tk loop.
func (a *app) Start() {
	cfg := a.c.Config
	theme.InitStyles()

	a.root = view.NewRootView(cfg.PositiveLabel, cfg.NegativeLabel, cfg.OutlineColor, cfg.OutlineWidth, a.c.Logger)
	a.annotator = presenter.NewAnnotationPresenter(a.c.Session, a.root, presenter.Style{
		Outline:       cfg.Outline(),
		OutlineWidth:  cfg.OutlineWidth,
		MaxW:          cfg.MaxViewWidth,
		MaxH:          cfg.MaxViewHeight,
		PositiveLabel: cfg.PositiveLabel,
		NegativeLabel: cfg.NegativeLabel,
	}, a.c.Logger)
	a.root.Build(view.Handlers{
		Previous:    a.annotator.Previous,
		Next:        a.annotator.Next,
		Positive:    a.annotator.ClassifyPositive,
		Negative:    a.annotator.ClassifyNegative,
		Undo:        a.annotator.UndoBox,
		PointerDown: a.annotator.PointerDown,
		PointerMove: a.annotator.PointerMove,
		PointerUp:   a.annotator.PointerUp,
		Exit:        a.exitHandler,
	})

	states := presenter.NewStatePresenter(a.root)
	a.c.Session.AddListener(states.OnState)

	stats := presenter.NewSessionPresenter(a.c.Stats, a.c.Session, a.root)
	a.loop = presenter.NewLoop(stats, a.scheduleUpdate)

	a.annotator.Start()
	if a.exiting {
		return
	}
	a.loop.Tick()

	App.Wait()
}

// exitHandler flushes committed work and tears down the window. Finish and
// the window manager close button both end up here.
func (a *app) exitHandler() {
	if a.exiting {
		return
	}
	a.exiting = true
	if a.annotator != nil {
		a.annotator.Close()
	}
	if a.loop != nil {
		a.loop.Stop()
	}
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	if a.c.Logger != nil {
		a.c.Logger.Info("annotator exiting", "committed", a.c.Session.Committed(), "table", a.c.Workbook.Path())
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.loop.Tick() })
}
