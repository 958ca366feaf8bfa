package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput    Phase = iota // 0: swap + dispatch last tick's events
	PhaseMovement              // 1: traversal toward destinations
	PhaseBattle                // 2: battle phase machine
	PhaseRhythm                // 3: conductor, beat events
	PhaseAction                // 4: enemy actions, spinners, autoplay
	PhasePersist               // 5: battle history flush
	PhaseCleanup               // 6: destroy queued entities
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseMovement:
		return "movement"
	case PhaseBattle:
		return "battle"
	case PhaseRhythm:
		return "rhythm"
	case PhaseAction:
		return "action"
	case PhasePersist:
		return "persist"
	case PhaseCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// System is the interface every loop system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
