package presenter

import (
	"github.com/soocke/cpe-annotator/domain/annotation"
)

// StateView sets the state label in the view.
type StateView interface{ SetStateLabel(string) }

// StatePresenter mirrors session state transitions into the state label.
type StatePresenter struct {
	view   StateView
	latest annotation.State
	seen   bool
}

func NewStatePresenter(view StateView) *StatePresenter {
	return &StatePresenter{view: view}
}

// OnState is registered as a session listener.
func (p *StatePresenter) OnState(prev, next annotation.State) {
	if p == nil || p.view == nil {
		return
	}
	if p.seen && next == p.latest {
		return
	}
	p.seen = true
	p.latest = next
	p.view.SetStateLabel("State: " + next.String())
}
