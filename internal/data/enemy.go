package data

import (
	"fmt"
	"os"
	"sort"

	"github.com/beatbound/battle/internal/core/geom"
	"gopkg.in/yaml.v3"
)

// Action kinds understood by action.Build.
const (
	ActionRotation = "rotation"
	ActionScript   = "script"
)

// ActionDef declares one battle-phase behaviour of an enemy.
type ActionDef struct {
	Kind     string `yaml:"kind"`     // rotation | script
	Name     string `yaml:"name"`     // display / log name
	Script   string `yaml:"script"`   // lua function prefix, kind=script only
	Spinners int    `yaml:"spinners"` // number of spinning visual elements
}

// EnemyTemplate holds static data for an enemy type loaded from YAML.
type EnemyTemplate struct {
	ID                     string      `yaml:"id"`
	Name                   string      `yaml:"name"`
	BPM                    float64     `yaml:"bpm"`
	HP                     int         `yaml:"hp"`
	RelativeBattleDistance geom.Vec3   `yaml:"relative_battle_distance"`
	Actions                []ActionDef `yaml:"actions"`
}

type enemyListFile struct {
	Enemies []EnemyTemplate `yaml:"enemies"`
}

// EnemyTable holds all enemy templates indexed by ID.
type EnemyTable struct {
	templates map[string]*EnemyTemplate
}

// LoadEnemyTable loads enemy templates from a YAML file.
func LoadEnemyTable(path string) (*EnemyTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read enemy list: %w", err)
	}
	return ParseEnemyTable(raw)
}

// ParseEnemyTable decodes and validates an enemy list document.
func ParseEnemyTable(raw []byte) (*EnemyTable, error) {
	var f enemyListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse enemy list: %w", err)
	}
	t := &EnemyTable{templates: make(map[string]*EnemyTemplate, len(f.Enemies))}
	for i := range f.Enemies {
		e := &f.Enemies[i]
		if err := e.validate(); err != nil {
			return nil, err
		}
		if _, dup := t.templates[e.ID]; dup {
			return nil, fmt.Errorf("enemy %q: duplicate id", e.ID)
		}
		t.templates[e.ID] = e
	}
	return t, nil
}

func (e *EnemyTemplate) validate() error {
	if e.ID == "" {
		return fmt.Errorf("enemy %q: missing id", e.Name)
	}
	if e.Name == "" {
		return fmt.Errorf("enemy %q: missing name", e.ID)
	}
	if e.BPM <= 0 {
		return fmt.Errorf("enemy %q: bpm must be positive, got %v", e.ID, e.BPM)
	}
	if e.HP <= 0 {
		return fmt.Errorf("enemy %q: hp must be positive, got %d", e.ID, e.HP)
	}
	for _, a := range e.Actions {
		switch a.Kind {
		case ActionRotation:
		case ActionScript:
			if a.Script == "" {
				return fmt.Errorf("enemy %q: script action %q has no script", e.ID, a.Name)
			}
		default:
			return fmt.Errorf("enemy %q: unknown action kind %q", e.ID, a.Kind)
		}
	}
	return nil
}

// Get returns an enemy template by ID, or nil if not found.
func (t *EnemyTable) Get(id string) *EnemyTemplate {
	return t.templates[id]
}

// Count returns the number of loaded templates.
func (t *EnemyTable) Count() int {
	return len(t.templates)
}

// IDs returns all template IDs in sorted order.
func (t *EnemyTable) IDs() []string {
	ids := make([]string, 0, len(t.templates))
	for id := range t.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
