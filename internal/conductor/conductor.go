// Package conductor keeps the beat clock that rhythm combat runs on.
package conductor

import (
	"errors"
	"fmt"
	"time"

	"github.com/beatbound/battle/internal/core/event"
	coresys "github.com/beatbound/battle/internal/core/system"
	"go.uber.org/zap"
)

// ErrInvalidBPM is returned for a non-positive tempo.
var ErrInvalidBPM = errors.New("bpm must be positive")

// Conductor advances song position each tick and emits event.Beat on every
// beat boundary while conducting. Phase 3 (Rhythm).
type Conductor struct {
	bus *event.Bus
	log *zap.Logger

	conducting bool
	bpm        float64
	beatLen    time.Duration
	songPos    time.Duration // since BeginConducting
	beat       int           // beats completed
}

func New(bus *event.Bus, log *zap.Logger) *Conductor {
	return &Conductor{bus: bus, log: log}
}

func (c *Conductor) Phase() coresys.Phase { return coresys.PhaseRhythm }

// BeginConducting (re)starts the clock at bpm from song position zero.
func (c *Conductor) BeginConducting(bpm float64) error {
	if bpm <= 0 {
		return fmt.Errorf("begin conducting at %v: %w", bpm, ErrInvalidBPM)
	}
	c.conducting = true
	c.bpm = bpm
	c.beatLen = time.Duration(float64(time.Minute) / bpm)
	if c.beatLen <= 0 {
		c.conducting = false
		return fmt.Errorf("begin conducting at %v: %w", bpm, ErrInvalidBPM)
	}
	c.songPos = 0
	c.beat = 0
	c.log.Debug("conductor started", zap.Float64("bpm", bpm))
	return nil
}

// StopConducting halts the clock. Safe to call when stopped.
func (c *Conductor) StopConducting() {
	if !c.conducting {
		return
	}
	c.conducting = false
	c.log.Debug("conductor stopped", zap.Int("beats", c.beat))
}

func (c *Conductor) Conducting() bool      { return c.conducting }
func (c *Conductor) BPM() float64          { return c.bpm }
func (c *Conductor) SongPosition() float64 { return c.songPos.Seconds() }
func (c *Conductor) Beat() int             { return c.beat }

// SecPerBeat returns the beat length at the current tempo, 0 when never started.
func (c *Conductor) SecPerBeat() float64 { return c.beatLen.Seconds() }

// BeatProgress returns how far into the current beat the song is, in [0,1).
func (c *Conductor) BeatProgress() float64 {
	if c.beatLen == 0 {
		return 0
	}
	into := c.songPos - time.Duration(c.beat)*c.beatLen
	return float64(into) / float64(c.beatLen)
}

func (c *Conductor) Update(dt time.Duration) {
	if !c.conducting {
		return
	}
	c.songPos += dt
	for c.songPos >= time.Duration(c.beat+1)*c.beatLen {
		c.beat++
		if c.bus != nil {
			event.Emit(c.bus, event.Beat{Number: c.beat, BPM: c.bpm})
		}
	}
}
