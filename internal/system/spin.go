package system

import (
	"time"

	"github.com/beatbound/battle/internal/action"
	coresys "github.com/beatbound/battle/internal/core/system"
	"github.com/beatbound/battle/internal/world"
)

type actionOwner interface {
	Actions() []action.EnemyAction
}

// SpinSystem turns the spinners of every enemy action by their current speed.
// Phase 4 (Action).
type SpinSystem struct {
	world *world.State
}

func NewSpinSystem(ws *world.State) *SpinSystem {
	return &SpinSystem{world: ws}
}

func (s *SpinSystem) Phase() coresys.Phase { return coresys.PhaseAction }

func (s *SpinSystem) Update(dt time.Duration) {
	s.world.EachPawn(func(p world.Pawn) {
		owner, ok := p.(actionOwner)
		if !ok {
			return
		}
		for _, a := range owner.Actions() {
			so, ok := a.(action.SpinnerOwner)
			if !ok {
				continue
			}
			for _, sp := range so.Spinners() {
				sp.Advance(dt)
			}
		}
	})
}
