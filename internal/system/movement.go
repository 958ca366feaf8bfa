package system

import (
	"time"

	"github.com/beatbound/battle/internal/core/ecs"
	coresys "github.com/beatbound/battle/internal/core/system"
	"github.com/beatbound/battle/internal/world"
	"go.uber.org/zap"
)

// MovementSystem walks every moving pawn toward its destination and clears
// the moving flag on arrival. Phase 1 (Movement).
type MovementSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewMovementSystem(ws *world.State, log *zap.Logger) *MovementSystem {
	return &MovementSystem{world: ws, log: log}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseMovement }

func (s *MovementSystem) Update(dt time.Duration) {
	s.world.Traversals.Each(func(id ecs.EntityID, tr *world.Traversal) {
		if !tr.Moving {
			return
		}
		t, ok := s.world.Transforms.Get(id)
		if !ok {
			tr.Moving = false
			return
		}
		pos, arrived := t.Position.MoveToward(tr.Destination, tr.Speed*dt.Seconds())
		t.Position = pos
		if arrived {
			tr.Moving = false
			s.log.Debug("arrived", zap.Stringer("entity", id),
				zap.Float64("x", pos.X), zap.Float64("y", pos.Y), zap.Float64("z", pos.Z))
		}
	})
}
