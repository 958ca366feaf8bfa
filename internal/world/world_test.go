package world

import (
	"testing"

	"github.com/beatbound/battle/internal/action"
	"github.com/beatbound/battle/internal/core/event"
	"github.com/beatbound/battle/internal/core/geom"
	"github.com/beatbound/battle/internal/data"
	"go.uber.org/zap"
)

func knifeDancer() *data.EnemyTemplate {
	return &data.EnemyTemplate{ID: "knife_dancer", Name: "Knife Dancer", BPM: 120, HP: 30}
}

func TestPlayerTraversal(t *testing.T) {
	s := NewState(nil)
	p := s.SpawnPlayer("Hero", geom.Vec3{}, 4, 100)

	mv := p.Traversal()
	if mv == nil {
		t.Fatal("Traversal() = nil for spawned player")
	}
	if mv.MovingToDestination() {
		t.Error("fresh player reports moving")
	}
	mv.MoveToDestination(geom.Vec3{X: 8})
	if !mv.MovingToDestination() {
		t.Error("MoveToDestination did not start movement")
	}
	tr, _ := s.Traversals.Get(p.ID())
	if tr.Destination.X != 8 {
		t.Errorf("Destination = %+v, want X=8", tr.Destination)
	}

	s.Traversals.Remove(p.ID())
	if p.Traversal() != nil {
		t.Error("Traversal() should be nil without the component")
	}
}

func TestEnemyBattleModeDrivesActions(t *testing.T) {
	s := NewState(nil)
	rot := action.NewRotation("blades", 2)
	e := s.SpawnEnemy(knifeDancer(), geom.Vec3{X: 10}, []action.EnemyAction{rot})

	if e.Role() != RoleEnemy || e.Name() != "Knife Dancer" {
		t.Errorf("Role/Name = %v/%q", e.Role(), e.Name())
	}
	if e.Position().X != 10 {
		t.Errorf("Position = %+v", e.Position())
	}

	e.EnterBattle()
	if !e.InBattle() || !rot.Running() {
		t.Fatal("EnterBattle did not start actions")
	}
	if rot.Spinners()[0].Speed != action.RotationSpeed {
		t.Errorf("spinner speed = %v", rot.Spinners()[0].Speed)
	}

	e.ExitBattle()
	if e.InBattle() || rot.Running() {
		t.Error("ExitBattle did not stop actions")
	}
	if rot.Spinners()[1].Speed != 0 {
		t.Errorf("spinner speed after exit = %v", rot.Spinners()[1].Speed)
	}
}

func TestDamageEmitsPawnDiedOnce(t *testing.T) {
	bus := event.NewBus()
	var died []event.PawnDied
	event.Subscribe(bus, func(ev event.PawnDied) { died = append(died, ev) })

	s := NewState(bus)
	e := s.SpawnEnemy(knifeDancer(), geom.Vec3{}, nil)

	if s.Damage(e.ID(), 10) {
		t.Error("Damage reported a kill at 20 hp left")
	}
	if !s.Damage(e.ID(), 25) {
		t.Error("Damage did not report the kill")
	}
	if s.Damage(e.ID(), 5) {
		t.Error("dead pawn killed twice")
	}
	h, _ := s.Health.Get(e.ID())
	if h.HP != 0 || !h.Dead {
		t.Errorf("health = %+v, want 0/dead", *h)
	}

	bus.SwapBuffers()
	bus.DispatchAll()
	if len(died) != 1 || died[0].EntityID != e.ID() {
		t.Errorf("PawnDied events = %+v", died)
	}
}

func TestLookupAndDespawn(t *testing.T) {
	s := NewState(nil)
	p := s.SpawnPlayer("Hero", geom.Vec3{}, 4, 10)
	e := s.SpawnEnemy(knifeDancer(), geom.Vec3{}, nil)

	got, ok := s.Lookup(e.ID())
	if !ok || got.Role() != RoleEnemy {
		t.Fatalf("Lookup(enemy) = %v, %v", got, ok)
	}
	if s.PawnCount() != 2 {
		t.Errorf("PawnCount() = %d, want 2", s.PawnCount())
	}

	s.Despawn(e.ID())
	if _, ok := s.Lookup(e.ID()); !ok {
		t.Error("pawn removed before flush")
	}
	s.Flush()
	if _, ok := s.Lookup(e.ID()); ok {
		t.Error("pawn still present after flush")
	}
	if s.Transforms.Has(e.ID()) {
		t.Error("components survived flush")
	}
	if _, ok := s.Lookup(p.ID()); !ok {
		t.Error("player lost by unrelated flush")
	}

	var names []string
	s.EachPawn(func(p Pawn) { names = append(names, p.Name()) })
	if len(names) != 1 || names[0] != "Hero" {
		t.Errorf("EachPawn = %v, want [Hero]", names)
	}
}

func TestSpawnEncounter(t *testing.T) {
	enemies, err := data.ParseEnemyTable([]byte(`
enemies:
  - id: knife_dancer
    name: Knife Dancer
    bpm: 120
    hp: 30
    actions:
      - {kind: rotation, spinners: 2}
  - id: drummer
    name: Drummer
    bpm: 90
    hp: 40
    actions:
      - {kind: script, name: drumroll, script: drumroll}
`))
	if err != nil {
		t.Fatalf("ParseEnemyTable: %v", err)
	}
	s := NewState(nil)

	enc := &data.Encounter{ID: "alley", Enemies: []data.EncounterSpawn{
		{Enemy: "knife_dancer", Position: geom.Vec3{X: 10}},
		{Enemy: "knife_dancer", Position: geom.Vec3{X: 20}},
	}}
	got, err := s.SpawnEncounter(enc, enemies, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("SpawnEncounter: %v", err)
	}
	if len(got) != 2 || got[1].Position() != (geom.Vec3{X: 20}) {
		t.Fatalf("spawned = %v", got)
	}
	if len(got[0].Actions()) != 1 {
		t.Errorf("actions = %d, want 1", len(got[0].Actions()))
	}
	if got[0].ID() == got[1].ID() {
		t.Error("two spawns share an entity")
	}

	// scripted enemy without an engine fails and leaves nothing behind
	bad := &data.Encounter{ID: "band", Enemies: []data.EncounterSpawn{
		{Enemy: "knife_dancer"},
		{Enemy: "drummer"},
	}}
	if _, err := s.SpawnEncounter(bad, enemies, nil, zap.NewNop()); err == nil {
		t.Fatal("SpawnEncounter accepted a scripted enemy without an engine")
	}
	s.Flush()
	if s.PawnCount() != 2 {
		t.Errorf("PawnCount() = %d after failed spawn, want 2", s.PawnCount())
	}
}
