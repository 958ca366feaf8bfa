// Package gamestate holds the global game-mode machine the battle manager
// switches between free roam and battle.
package gamestate

import (
	"github.com/beatbound/battle/internal/core/event"
	"go.uber.org/zap"
)

// Mode is a global game mode.
type Mode int

const (
	ModeWorldTraversal Mode = iota
	ModeBattle
)

func (m Mode) String() string {
	switch m {
	case ModeWorldTraversal:
		return "world_traversal"
	case ModeBattle:
		return "battle"
	default:
		return "unknown"
	}
}

// Hook runs on a mode boundary.
type Hook func(from, to Mode)

// Machine is a synchronous mode switch. Transitions to the current mode still
// run hooks and are counted, matching how callers re-enter a mode.
type Machine struct {
	current     Mode
	transitions int
	onEnter     map[Mode][]Hook
	onExit      map[Mode][]Hook
	bus         *event.Bus
	log         *zap.Logger
}

// NewMachine starts in ModeWorldTraversal. bus may be nil.
func NewMachine(bus *event.Bus, log *zap.Logger) *Machine {
	return &Machine{
		current: ModeWorldTraversal,
		onEnter: make(map[Mode][]Hook),
		onExit:  make(map[Mode][]Hook),
		bus:     bus,
		log:     log,
	}
}

func (m *Machine) Current() Mode { return m.current }

// Transitions returns how many transitions have happened.
func (m *Machine) Transitions() int { return m.transitions }

func (m *Machine) OnEnter(mode Mode, h Hook) { m.onEnter[mode] = append(m.onEnter[mode], h) }
func (m *Machine) OnExit(mode Mode, h Hook) { m.onExit[mode] = append(m.onExit[mode], h) }

// Transition switches to mode, running exit hooks of the old mode first.
func (m *Machine) Transition(mode Mode) {
	from := m.current
	for _, h := range m.onExit[from] {
		h(from, mode)
	}
	m.current = mode
	m.transitions++
	for _, h := range m.onEnter[mode] {
		h(from, mode)
	}
	m.log.Info("game mode", zap.Stringer("from", from), zap.Stringer("to", mode))
	if m.bus != nil {
		event.Emit(m.bus, event.ModeChanged{From: from.String(), To: mode.String()})
	}
}
