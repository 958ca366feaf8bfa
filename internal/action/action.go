// Package action implements enemy battle-phase behaviours. An enemy starts
// all of its actions when it enters battle mode and stops them on exit.
package action

import "time"

// EnemyAction is the symmetric enable/disable contract every variant meets.
type EnemyAction interface {
	Name() string
	StartAction()
	StopAction()
	Running() bool
}

// Base is the no-op hook variants embed. It only tracks running state.
type Base struct {
	name    string
	running bool
}

func NewBase(name string) Base { return Base{name: name} }

func (b *Base) Name() string  { return b.name }
func (b *Base) Running() bool { return b.running }

// StartAction and StopAction are hooks; variants call them before their own work.
func (b *Base) StartAction() { b.running = true }
func (b *Base) StopAction()  { b.running = false }

// Spinner is one rotating visual element. Angle is in degrees.
type Spinner struct {
	Speed float64 // revolutions per second
	Angle float64
}

// Advance rotates the spinner by its current speed.
func (s *Spinner) Advance(dt time.Duration) {
	if s.Speed == 0 {
		return
	}
	s.Angle += s.Speed * 360 * dt.Seconds()
	for s.Angle >= 360 {
		s.Angle -= 360
	}
	for s.Angle < 0 {
		s.Angle += 360
	}
}

// SpinnerOwner is implemented by actions that drive spinners.
type SpinnerOwner interface {
	Spinners() []*Spinner
}

func newSpinners(n int) []*Spinner {
	s := make([]*Spinner, n)
	for i := range s {
		s[i] = &Spinner{}
	}
	return s
}
