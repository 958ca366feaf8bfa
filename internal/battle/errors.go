package battle

import "errors"

var (
	ErrNoEnemies         = errors.New("battle: no enemy opponent")
	ErrBattleInProgress  = errors.New("battle: a battle is already in progress")
	ErrMissingPlayerPawn = errors.New("battle: missing player pawn")
	ErrMovementTimeout   = errors.New("battle: player did not reach the enemy in time")
	ErrNoActiveBattle    = errors.New("battle: no active battle")
	ErrUnknownPawn       = errors.New("battle: pawn is not fighting in this battle")
)
