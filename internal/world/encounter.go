package world

import (
	"fmt"

	"github.com/beatbound/battle/internal/action"
	"github.com/beatbound/battle/internal/data"
	"go.uber.org/zap"
)

// SpawnEncounter places every enemy of enc in the world, in fight order.
// runner may be nil when no enemy uses a scripted action.
func (s *State) SpawnEncounter(enc *data.Encounter, enemies *data.EnemyTable, runner action.ScriptRunner, log *zap.Logger) ([]*Enemy, error) {
	out := make([]*Enemy, 0, len(enc.Enemies))
	for i, sp := range enc.Enemies {
		tmpl := enemies.Get(sp.Enemy)
		if tmpl == nil {
			s.despawnAll(out)
			return nil, fmt.Errorf("encounter %q slot %d: unknown enemy %q", enc.ID, i, sp.Enemy)
		}
		actions, err := action.Build(tmpl, runner, log)
		if err != nil {
			s.despawnAll(out)
			return nil, fmt.Errorf("encounter %q slot %d: %w", enc.ID, i, err)
		}
		out = append(out, s.SpawnEnemy(tmpl, sp.Position, actions))
	}
	log.Info("encounter spawned", zap.String("encounter", enc.ID), zap.Int("enemies", len(out)))
	return out, nil
}

func (s *State) despawnAll(enemies []*Enemy) {
	for _, e := range enemies {
		s.Despawn(e.ID())
	}
}
