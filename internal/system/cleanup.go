package system

import (
	"time"

	coresys "github.com/beatbound/battle/internal/core/system"
	"github.com/beatbound/battle/internal/world"
)

// CleanupSystem flushes the deferred pawn destruction queue at tick end.
// Phase 6 (Cleanup).
type CleanupSystem struct {
	world *world.State
}

func NewCleanupSystem(ws *world.State) *CleanupSystem {
	return &CleanupSystem{world: ws}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.Flush()
}
