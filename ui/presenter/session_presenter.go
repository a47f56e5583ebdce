package presenter

import (
	"time"

	"github.com/soocke/cpe-annotator/ui/model"
)

// ProgressSource reports session completion and the number of committed images.
type ProgressSource interface {
	Done() bool
	Committed() int
}

// SessionView displays elapsed time and throughput.
type SessionView interface {
	SetSession(elapsed time.Duration, committed int, perMinute float64)
}

// SessionPresenter formats session statistics from the model to the view.
type SessionPresenter struct {
	sess *model.SessionModel
	src  ProgressSource
	view SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, src ProgressSource, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, src: src, view: view}
}

// Tick updates the presenter: advance the session model and push values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.src == nil || p.view == nil {
		return
	}
	p.sess.OnTick(!p.src.Done(), p.src.Committed(), now)
	p.view.SetSession(p.sess.Values())
}
