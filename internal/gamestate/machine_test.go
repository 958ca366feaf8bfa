package gamestate

import (
	"testing"

	"github.com/beatbound/battle/internal/core/event"
	"go.uber.org/zap"
)

func TestTransitionRunsHooksInOrder(t *testing.T) {
	m := NewMachine(nil, zap.NewNop())
	var got []string
	m.OnExit(ModeWorldTraversal, func(from, to Mode) { got = append(got, "exit:"+from.String()) })
	m.OnEnter(ModeBattle, func(from, to Mode) { got = append(got, "enter:"+to.String()) })

	m.Transition(ModeBattle)

	if m.Current() != ModeBattle {
		t.Errorf("Current() = %v, want battle", m.Current())
	}
	if m.Transitions() != 1 {
		t.Errorf("Transitions() = %d, want 1", m.Transitions())
	}
	want := []string{"exit:world_traversal", "enter:battle"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("hooks = %v, want %v", got, want)
	}
}

func TestTransitionEmitsModeChanged(t *testing.T) {
	bus := event.NewBus()
	var seen []event.ModeChanged
	event.Subscribe(bus, func(ev event.ModeChanged) { seen = append(seen, ev) })

	m := NewMachine(bus, zap.NewNop())
	m.Transition(ModeBattle)
	m.Transition(ModeWorldTraversal)

	bus.SwapBuffers()
	bus.DispatchAll()

	if len(seen) != 2 {
		t.Fatalf("saw %d events, want 2", len(seen))
	}
	if seen[0].From != "world_traversal" || seen[0].To != "battle" {
		t.Errorf("first event = %+v", seen[0])
	}
	if seen[1].To != "world_traversal" {
		t.Errorf("second event = %+v", seen[1])
	}
}

func TestModeString(t *testing.T) {
	if ModeBattle.String() != "battle" || Mode(9).String() != "unknown" {
		t.Errorf("unexpected strings: %q %q", ModeBattle, Mode(9))
	}
}
