package battle

import (
	"errors"
	"time"

	"github.com/beatbound/battle/internal/core/ecs"
	"github.com/beatbound/battle/internal/core/event"
	coresys "github.com/beatbound/battle/internal/core/system"
	"github.com/beatbound/battle/internal/world"
	"go.uber.org/zap"
)

// PawnLookup resolves entity IDs carried by events.
type PawnLookup interface {
	Lookup(id ecs.EntityID) (world.Pawn, bool)
}

// System advances a Manager each tick and feeds it pawn deaths from the bus.
// Phase 2 (Battle).
type System struct {
	mgr    *Manager
	pawns  PawnLookup
	log    *zap.Logger
	errors int
}

func NewSystem(mgr *Manager, bus *event.Bus, pawns PawnLookup, log *zap.Logger) *System {
	s := &System{mgr: mgr, pawns: pawns, log: log}
	event.Subscribe(bus, s.onPawnDied)
	return s
}

func (s *System) Phase() coresys.Phase { return coresys.PhaseBattle }

func (s *System) Update(dt time.Duration) {
	if err := s.mgr.Update(dt); err != nil {
		s.errors++
		s.log.Error("battle update failed", zap.Error(err))
	}
}

// Errors returns how many updates aborted a battle.
func (s *System) Errors() int { return s.errors }

func (s *System) onPawnDied(ev event.PawnDied) {
	p, ok := s.pawns.Lookup(ev.EntityID)
	if !ok {
		s.log.Debug("dead pawn already gone", zap.Stringer("entity", ev.EntityID))
		return
	}
	err := s.mgr.OnPawnDeath(p)
	switch {
	case err == nil:
	case errors.Is(err, ErrNoActiveBattle), errors.Is(err, ErrUnknownPawn):
		// deaths outside the fight are not ours
		s.log.Debug("pawn death ignored", zap.String("pawn", p.Name()), zap.Error(err))
	default:
		s.log.Error("pawn death", zap.String("pawn", p.Name()), zap.Error(err))
	}
}
