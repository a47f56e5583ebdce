package model

import (
	"time"
)

// SessionModel tracks how long the operator has been annotating and how many
// images were committed. It is decoupled from the UI; presenters should poll
// Values() and update views. The zero value is ready to use.
type SessionModel struct {
	active    bool
	start     time.Time
	elapsed   time.Duration
	committed int
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the model. The clock starts on the first active tick and
// freezes once active turns false.
func (m *SessionModel) OnTick(active bool, committed int, now time.Time) {
	if m == nil {
		return
	}
	m.committed = committed
	if active {
		if !m.active && m.start.IsZero() {
			m.start = now
		}
		m.active = true
		m.elapsed = now.Sub(m.start)
	} else if m.active { // transition on -> off
		m.elapsed = now.Sub(m.start)
		m.active = false
	}
}

// Values returns elapsed time, committed images and images per minute.
func (m *SessionModel) Values() (elapsed time.Duration, committed int, perMinute float64) {
	if m == nil {
		return 0, 0, 0
	}
	elapsed, committed = m.elapsed, m.committed
	if elapsed >= time.Second {
		perMinute = float64(committed) / elapsed.Minutes()
	}
	return
}
