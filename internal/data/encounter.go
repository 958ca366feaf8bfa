package data

import (
	"fmt"
	"os"

	"github.com/beatbound/battle/internal/core/geom"
	"gopkg.in/yaml.v3"
)

// EncounterSpawn places one enemy of an encounter in the world.
type EncounterSpawn struct {
	Enemy    string    `yaml:"enemy"`
	Position geom.Vec3 `yaml:"position"`
}

// Encounter is an ordered group of enemies fought one after another.
type Encounter struct {
	ID      string           `yaml:"id"`
	Enemies []EncounterSpawn `yaml:"enemies"`
}

type encounterListFile struct {
	Encounters []Encounter `yaml:"encounters"`
}

// EncounterTable holds encounters indexed by ID.
type EncounterTable struct {
	encounters map[string]*Encounter
}

// LoadEncounterTable loads encounters and checks every enemy reference
// against the given enemy table.
func LoadEncounterTable(path string, enemies *EnemyTable) (*EncounterTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read encounter list: %w", err)
	}
	return ParseEncounterTable(raw, enemies)
}

func ParseEncounterTable(raw []byte, enemies *EnemyTable) (*EncounterTable, error) {
	var f encounterListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse encounter list: %w", err)
	}
	t := &EncounterTable{encounters: make(map[string]*Encounter, len(f.Encounters))}
	for i := range f.Encounters {
		enc := &f.Encounters[i]
		if enc.ID == "" {
			return nil, fmt.Errorf("encounter #%d: missing id", i)
		}
		if len(enc.Enemies) == 0 {
			return nil, fmt.Errorf("encounter %q: no enemies", enc.ID)
		}
		for _, s := range enc.Enemies {
			if enemies.Get(s.Enemy) == nil {
				return nil, fmt.Errorf("encounter %q: unknown enemy %q", enc.ID, s.Enemy)
			}
		}
		t.encounters[enc.ID] = enc
	}
	return t, nil
}

// Get returns an encounter by ID, or nil if not found.
func (t *EncounterTable) Get(id string) *Encounter {
	return t.encounters[id]
}

// Count returns the number of loaded encounters.
func (t *EncounterTable) Count() int {
	return len(t.encounters)
}
