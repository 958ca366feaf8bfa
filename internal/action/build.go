package action

import (
	"fmt"

	"github.com/beatbound/battle/internal/data"
	"go.uber.org/zap"
)

// Build instantiates the actions declared on an enemy template.
// runner may be nil when the template declares no scripted actions.
func Build(tmpl *data.EnemyTemplate, runner ScriptRunner, log *zap.Logger) ([]EnemyAction, error) {
	out := make([]EnemyAction, 0, len(tmpl.Actions))
	for _, def := range tmpl.Actions {
		name := def.Name
		if name == "" {
			name = def.Kind
		}
		switch def.Kind {
		case data.ActionRotation:
			out = append(out, NewRotation(name, def.Spinners))
		case data.ActionScript:
			if runner == nil {
				return nil, fmt.Errorf("enemy %q action %q: scripted action without a script engine", tmpl.ID, name)
			}
			out = append(out, NewScripted(name, def.Script, tmpl.Name, tmpl.BPM, def.Spinners, runner, log))
		default:
			return nil, fmt.Errorf("enemy %q: unknown action kind %q", tmpl.ID, def.Kind)
		}
	}
	return out, nil
}
