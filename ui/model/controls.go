package model

import (
	"fmt"

	"github.com/soocke/cpe-annotator/domain/annotation"
)

// SessionSource is the read side of the annotation session.
type SessionSource interface {
	State() annotation.State
	Index() int
	Len() int
	Current() (annotation.ImageRef, bool)
	Class() annotation.Classification
	CanUndo() bool
}

// Controls mirrors session state onto the operator surface. It is derived
// from the session on every update and never consulted for decisions.
type Controls struct {
	Progress      string
	Class         annotation.Classification
	ClassEnabled  bool
	UndoEnabled   bool
	PrevEnabled   bool
	NextEnabled   bool
	PointerActive bool
}

// DeriveControls computes the control state for s. A nil source yields the
// zero value, which disables everything.
func DeriveControls(s SessionSource) Controls {
	if s == nil {
		return Controls{}
	}
	st := s.State()
	if st == annotation.StateDone {
		return Controls{Progress: fmt.Sprintf("%d / %d  done", s.Len(), s.Len())}
	}
	c := Controls{
		Class:         s.Class(),
		ClassEnabled:  st == annotation.StateAwaitingClassification,
		UndoEnabled:   s.CanUndo(),
		PrevEnabled:   s.Index() > 0,
		NextEnabled:   st != annotation.StateLoading,
		PointerActive: st == annotation.StateCapturing,
	}
	if ref, ok := s.Current(); ok {
		c.Progress = fmt.Sprintf("%d / %d  %s", ref.Ordinal+1, s.Len(), ref.Name)
	}
	return c
}
