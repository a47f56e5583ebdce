package presenter

import "time"

// Loop drives periodic updates of the session statistics.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback
// until Stop. The zero value is usable (methods are nil-safe).
type Loop struct {
	Session  *SessionPresenter
	Schedule func()
	stopped  bool
}

func NewLoop(sess *SessionPresenter, schedule func()) *Loop {
	return &Loop{Session: sess, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil || l.stopped {
		return
	}
	if l.Session != nil {
		l.Session.Tick(time.Now())
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}

// Stop prevents further rescheduling.
func (l *Loop) Stop() {
	if l != nil {
		l.stopped = true
	}
}
