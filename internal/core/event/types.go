package event

import (
	"time"

	"github.com/beatbound/battle/internal/core/ecs"
)

// PawnDied is emitted when a pawn's health reaches zero.
type PawnDied struct {
	EntityID ecs.EntityID
}

// ModeChanged is emitted on every global game-mode transition.
type ModeChanged struct {
	From string
	To   string
}

// BattleStarted is emitted once per battle session.
type BattleStarted struct {
	Player  ecs.EntityID
	Enemies []string
}

// EncounterStarted is emitted when an enemy becomes current, including
// follow-up enemies dequeued mid-battle.
type EncounterStarted struct {
	Enemy     ecs.EntityID
	EnemyName string
	Index     int
	Remaining int
}

// CombatBegan is emitted when the countdown finishes and the conductor starts.
type CombatBegan struct {
	Enemy ecs.EntityID
	BPM   float64
}

// BattleEnded carries the session summary used for persistence.
type BattleEnded struct {
	Player          string
	Outcome         string
	EnemiesDefeated int
	Enemies         []string
	LastEnemy       string
	StartedAt       time.Time
	EndedAt         time.Time
}

// Beat is emitted by the conductor on each beat boundary.
type Beat struct {
	Number int
	BPM    float64
}
