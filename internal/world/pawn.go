package world

import (
	"github.com/beatbound/battle/internal/action"
	"github.com/beatbound/battle/internal/core/ecs"
	"github.com/beatbound/battle/internal/core/geom"
	"github.com/beatbound/battle/internal/data"
)

// Role tags which side of a battle a pawn fights on.
type Role int

const (
	RolePlayer Role = iota + 1
	RoleEnemy
)

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Pawn is anything that can enter and leave battle mode.
type Pawn interface {
	ID() ecs.EntityID
	Role() Role
	Name() string
	EnterBattle()
	ExitBattle()
	InBattle() bool
}

// Mover is the movement capability the battle engage phase drives.
type Mover interface {
	MoveToDestination(dest geom.Vec3)
	MovingToDestination() bool
}

// Player is the player's pawn. Its lifecycle outlives any battle; battles only
// flip the in-battle flag.
type Player struct {
	id       ecs.EntityID
	name     string
	state    *State
	inBattle bool
}

// SpawnPlayer creates the player pawn with a traversal capability.
func (s *State) SpawnPlayer(name string, pos geom.Vec3, speed float64, hp int) *Player {
	id := s.ecs.CreateEntity()
	s.Transforms.Set(id, &Transform{Position: pos})
	s.Traversals.Set(id, &Traversal{Destination: pos, Speed: speed})
	s.Health.Set(id, &Health{HP: hp, MaxHP: hp})
	p := &Player{id: id, name: name, state: s}
	s.pawns[id] = p
	return p
}

func (p *Player) ID() ecs.EntityID { return p.id }
func (p *Player) Role() Role       { return RolePlayer }
func (p *Player) Name() string     { return p.name }
func (p *Player) InBattle() bool   { return p.inBattle }
func (p *Player) EnterBattle()     { p.inBattle = true }
func (p *Player) ExitBattle()      { p.inBattle = false }

// Position returns the player's current position.
func (p *Player) Position() geom.Vec3 {
	if t, ok := p.state.Transforms.Get(p.id); ok {
		return t.Position
	}
	return geom.Vec3{}
}

// Traversal returns the player's movement capability, or nil when the pawn
// has none (removed or never granted).
func (p *Player) Traversal() Mover {
	if !p.state.Traversals.Has(p.id) {
		return nil
	}
	return traverser{state: p.state, id: p.id}
}

type traverser struct {
	state *State
	id    ecs.EntityID
}

func (t traverser) MoveToDestination(dest geom.Vec3) {
	tr, ok := t.state.Traversals.Get(t.id)
	if !ok {
		return
	}
	tr.Destination = dest
	tr.Moving = true
}

func (t traverser) MovingToDestination() bool {
	tr, ok := t.state.Traversals.Get(t.id)
	return ok && tr.Moving
}

// Enemy is an enemy pawn. Its actions run while it is in battle.
type Enemy struct {
	id       ecs.EntityID
	tmpl     *data.EnemyTemplate
	state    *State
	actions  []action.EnemyAction
	inBattle bool
}

// SpawnEnemy places an enemy built from tmpl at pos.
func (s *State) SpawnEnemy(tmpl *data.EnemyTemplate, pos geom.Vec3, actions []action.EnemyAction) *Enemy {
	id := s.ecs.CreateEntity()
	s.Transforms.Set(id, &Transform{Position: pos})
	s.Health.Set(id, &Health{HP: tmpl.HP, MaxHP: tmpl.HP})
	e := &Enemy{id: id, tmpl: tmpl, state: s, actions: actions}
	s.pawns[id] = e
	return e
}

func (e *Enemy) ID() ecs.EntityID          { return e.id }
func (e *Enemy) Role() Role                { return RoleEnemy }
func (e *Enemy) Name() string              { return e.tmpl.Name }
func (e *Enemy) InBattle() bool            { return e.inBattle }
func (e *Enemy) Data() *data.EnemyTemplate { return e.tmpl }
func (e *Enemy) Actions() []action.EnemyAction {
	return e.actions
}

func (e *Enemy) Position() geom.Vec3 {
	if t, ok := e.state.Transforms.Get(e.id); ok {
		return t.Position
	}
	return geom.Vec3{}
}

// EnterBattle starts every action. Re-entering is a no-op.
func (e *Enemy) EnterBattle() {
	if e.inBattle {
		return
	}
	e.inBattle = true
	for _, a := range e.actions {
		a.StartAction()
	}
}

// ExitBattle stops every action. Exiting when not in battle is a no-op.
func (e *Enemy) ExitBattle() {
	if !e.inBattle {
		return
	}
	e.inBattle = false
	for _, a := range e.actions {
		a.StopAction()
	}
}
