package battle

// Phase is the battle sequence stage the manager is in.
type Phase int

const (
	PhaseIdle      Phase = iota // no session
	PhaseEngaging               // player walking up to the current enemy
	PhaseCountdown              // numbers, then "Battle!"
	PhaseActive                 // conductor running, fighting
	PhaseResolving              // battle over, victory banner still showing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseEngaging:
		return "engaging"
	case PhaseCountdown:
		return "countdown"
	case PhaseActive:
		return "active"
	case PhaseResolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// Outcome is how a battle session ended.
type Outcome string

const (
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
	OutcomeAborted Outcome = "aborted"
)
