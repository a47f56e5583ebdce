package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows elapsed annotation time and throughput.
type SessionStats interface {
	SetSession(elapsed time.Duration, committed int, perMinute float64)
}

type sessionStats struct {
	elapsedLbl *LabelWidget
	countLbl   *LabelWidget
}

// NewSessionStats creates elapsed and count labels in a grid layout.
// The elapsed label is placed at (row, startCol) and the count label at (row, startCol+1).
func NewSessionStats(row, startCol int) SessionStats {
	s := &sessionStats{elapsedLbl: Label(Width(14)), countLbl: Label(Width(22))}
	Grid(s.elapsedLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
	Grid(s.countLbl, Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	s.elapsedLbl.Configure(Txt("Time: 00:00"))
	s.countLbl.Configure(Txt("Committed: 0"))
	return s
}

func (s *sessionStats) SetSession(elapsed time.Duration, committed int, perMinute float64) {
	if s == nil || s.elapsedLbl == nil || s.countLbl == nil {
		return
	}
	s.elapsedLbl.Configure(Txt("Time: " + formatClock(elapsed)))
	s.countLbl.Configure(Txt(fmt.Sprintf("Committed: %d (%.1f/min)", committed, perMinute)))
}

// formatClock renders d as mm:ss, or h:mm:ss past one hour.
func formatClock(d time.Duration) string {
	seconds := int(d.Seconds())
	h, m, sec := seconds/3600, (seconds/60)%60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}
