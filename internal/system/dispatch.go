package system

import (
	"time"

	"github.com/beatbound/battle/internal/core/event"
	coresys "github.com/beatbound/battle/internal/core/system"
)

// EventDispatchSystem rotates the bus and delivers last tick's events.
// Phase 0 (Input).
type EventDispatchSystem struct {
	bus        *event.Bus
	dispatched int
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.dispatched += s.bus.Pending()
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}

// Dispatched returns how many events have been delivered so far.
func (s *EventDispatchSystem) Dispatched() int { return s.dispatched }
