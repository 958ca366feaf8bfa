package system

import (
	"time"

	"github.com/beatbound/battle/internal/battle"
	"github.com/beatbound/battle/internal/config"
	"github.com/beatbound/battle/internal/core/ecs"
	"github.com/beatbound/battle/internal/core/event"
	coresys "github.com/beatbound/battle/internal/core/system"
	"go.uber.org/zap"
)

// BattleView is the read side of the battle manager autoplay needs.
type BattleView interface {
	Phase() battle.Phase
	Player() battle.PlayerPawn
	Enemy() battle.EnemyPawn
}

// Damager applies damage to a pawn.
type Damager interface {
	Damage(id ecs.EntityID, amount int) bool
}

// AutoplaySystem stands in for player input: on every beat of an active
// fight it hits the current enemy, and every EnemyHitEvery beats the enemy
// hits back. Phase 4 (Action).
type AutoplaySystem struct {
	battle  BattleView
	damager Damager
	cfg     config.AutoplayConfig
	log     *zap.Logger

	pending int // beats received since last update
	beats   int // beats acted on during the current fight
}

func NewAutoplaySystem(bus *event.Bus, view BattleView, damager Damager, cfg config.AutoplayConfig, log *zap.Logger) *AutoplaySystem {
	s := &AutoplaySystem{battle: view, damager: damager, cfg: cfg, log: log}
	event.Subscribe(bus, s.onBeat)
	event.Subscribe(bus, s.onCombatBegan)
	return s
}

func (s *AutoplaySystem) Phase() coresys.Phase { return coresys.PhaseAction }

func (s *AutoplaySystem) onBeat(_ event.Beat) { s.pending++ }

func (s *AutoplaySystem) onCombatBegan(_ event.CombatBegan) {
	s.beats = 0
	s.pending = 0
}

func (s *AutoplaySystem) Update(_ time.Duration) {
	beats := s.pending
	s.pending = 0
	for i := 0; i < beats; i++ {
		if s.battle.Phase() != battle.PhaseActive {
			return
		}
		enemy, player := s.battle.Enemy(), s.battle.Player()
		if enemy == nil || player == nil {
			return
		}
		s.beats++
		if s.damager.Damage(enemy.ID(), s.cfg.DamagePerBeat) {
			s.log.Info("autoplay defeated enemy", zap.String("enemy", enemy.Name()), zap.Int("beats", s.beats))
			return
		}
		if s.cfg.EnemyHitEvery > 0 && s.beats%s.cfg.EnemyHitEvery == 0 {
			if s.damager.Damage(player.ID(), s.cfg.EnemyDamage) {
				s.log.Info("autoplay player fell", zap.String("enemy", enemy.Name()), zap.Int("beats", s.beats))
				return
			}
		}
	}
}
