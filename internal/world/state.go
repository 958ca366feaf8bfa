package world

import (
	"github.com/beatbound/battle/internal/core/ecs"
	"github.com/beatbound/battle/internal/core/event"
	"github.com/beatbound/battle/internal/core/geom"
)

// Transform is a pawn's world position.
type Transform struct {
	Position geom.Vec3
}

// Traversal is the movement capability: a pawn with one walks toward
// Destination at Speed units per second while Moving is set.
type Traversal struct {
	Destination geom.Vec3
	Speed       float64
	Moving      bool
}

// Health tracks hit points. Dead latches once HP reaches zero.
type Health struct {
	HP    int
	MaxHP int
	Dead  bool
}

// State owns every pawn in the scene and their component stores.
// Single-goroutine access only (game loop).
type State struct {
	ecs        *ecs.World
	Transforms *ecs.Store[Transform]
	Traversals *ecs.Store[Traversal]
	Health     *ecs.Store[Health]

	pawns map[ecs.EntityID]Pawn
	bus   *event.Bus
}

// NewState creates an empty scene. bus may be nil, in which case deaths are
// not announced.
func NewState(bus *event.Bus) *State {
	s := &State{
		ecs:        ecs.NewWorld(),
		Transforms: ecs.NewStore[Transform](),
		Traversals: ecs.NewStore[Traversal](),
		Health:     ecs.NewStore[Health](),
		pawns:      make(map[ecs.EntityID]Pawn),
		bus:        bus,
	}
	s.ecs.Register(s.Transforms)
	s.ecs.Register(s.Traversals)
	s.ecs.Register(s.Health)
	return s
}

// Lookup returns the live pawn with the given ID.
func (s *State) Lookup(id ecs.EntityID) (Pawn, bool) {
	p, ok := s.pawns[id]
	if !ok || !s.ecs.Alive(id) {
		return nil, false
	}
	return p, true
}

// PawnCount returns the number of live pawns.
func (s *State) PawnCount() int { return len(s.pawns) }

// EachPawn visits every live pawn.
func (s *State) EachPawn(fn func(Pawn)) {
	s.Transforms.Each(func(id ecs.EntityID, _ *Transform) {
		if p, ok := s.pawns[id]; ok {
			fn(p)
		}
	})
}

// Damage removes hp from a pawn and emits event.PawnDied the first time its
// health reaches zero. It reports whether this call killed the pawn.
func (s *State) Damage(id ecs.EntityID, amount int) bool {
	h, ok := s.Health.Get(id)
	if !ok || h.Dead || amount <= 0 {
		return false
	}
	h.HP -= amount
	if h.HP > 0 {
		return false
	}
	h.HP = 0
	h.Dead = true
	if s.bus != nil {
		event.Emit(s.bus, event.PawnDied{EntityID: id})
	}
	return true
}

// Despawn queues a pawn for removal at the end of the tick.
func (s *State) Despawn(id ecs.EntityID) {
	s.ecs.MarkForDestruction(id)
}

// Flush destroys queued pawns. Called by CleanupSystem.
func (s *State) Flush() {
	if s.ecs.PendingDestruction() == 0 {
		return
	}
	s.ecs.FlushDestroyQueue()
	for id := range s.pawns {
		if !s.ecs.Alive(id) {
			delete(s.pawns, id)
		}
	}
}
