package battle

import (
	"github.com/beatbound/battle/internal/core/ecs"
	"github.com/beatbound/battle/internal/core/geom"
	"github.com/beatbound/battle/internal/data"
	"github.com/beatbound/battle/internal/gamestate"
	"github.com/beatbound/battle/internal/world"
)

// Pawn is the capability set the manager needs from any combatant.
type Pawn interface {
	ID() ecs.EntityID
	Role() world.Role
	Name() string
	EnterBattle()
	ExitBattle()
	InBattle() bool
}

// PlayerPawn can walk up to an enemy.
type PlayerPawn interface {
	Pawn
	Traversal() world.Mover
}

// EnemyPawn exposes where it stands and its data record (BPM, approach offset).
type EnemyPawn interface {
	Pawn
	Position() geom.Vec3
	Data() *data.EnemyTemplate
}

// ModeSwitcher is the global game-mode machine.
type ModeSwitcher interface {
	Transition(mode gamestate.Mode)
}

// TextSink shows the big centre-screen text. Fire and forget.
type TextSink interface {
	UpdateCenterText(text string)
}

// Conductor is the rhythm clock started when combat begins.
type Conductor interface {
	BeginConducting(bpm float64) error
	StopConducting()
}

// Messages renders the player-facing strings of a battle.
type Messages interface {
	BattleStart() string
	EnemyDefeated(name string) string
	PlayerDefeated() string
}

type englishMessages struct{}

func (englishMessages) BattleStart() string              { return "Battle!" }
func (englishMessages) EnemyDefeated(name string) string { return "Defeated " + name + "!" }
func (englishMessages) PlayerDefeated() string           { return "Player Is Dead, SAD!" }
