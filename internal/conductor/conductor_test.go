package conductor

import (
	"errors"
	"testing"
	"time"

	"github.com/beatbound/battle/internal/core/event"
	"go.uber.org/zap"
)

func TestBeginConductingRejectsBadBPM(t *testing.T) {
	c := New(nil, zap.NewNop())
	for _, bpm := range []float64{0, -120} {
		if err := c.BeginConducting(bpm); !errors.Is(err, ErrInvalidBPM) {
			t.Errorf("BeginConducting(%v) = %v, want ErrInvalidBPM", bpm, err)
		}
	}
	if c.Conducting() {
		t.Error("conductor running after rejected start")
	}
}

func TestConductorEmitsBeats(t *testing.T) {
	bus := event.NewBus()
	var beats []int
	event.Subscribe(bus, func(b event.Beat) { beats = append(beats, b.Number) })

	c := New(bus, zap.NewNop())
	if err := c.BeginConducting(120); err != nil { // 0.5s per beat
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		c.Update(100 * time.Millisecond)
	}
	// 1.0s at 120 BPM = 2 beats; one big step crossing two boundaries
	c.Update(time.Second)

	bus.SwapBuffers()
	bus.DispatchAll()

	if c.Beat() != 4 {
		t.Errorf("Beat() = %d, want 4", c.Beat())
	}
	want := []int{1, 2, 3, 4}
	if len(beats) != len(want) {
		t.Fatalf("beats = %v, want %v", beats, want)
	}
	for i := range want {
		if beats[i] != want[i] {
			t.Errorf("beats[%d] = %d, want %d", i, beats[i], want[i])
		}
	}
}

func TestStopAndRestart(t *testing.T) {
	c := New(nil, zap.NewNop())
	if err := c.BeginConducting(60); err != nil {
		t.Fatal(err)
	}
	c.Update(2500 * time.Millisecond)
	if c.Beat() != 2 {
		t.Fatalf("Beat() = %d, want 2", c.Beat())
	}
	if p := c.BeatProgress(); p < 0.49 || p > 0.51 {
		t.Errorf("BeatProgress() = %v, want ~0.5", p)
	}

	c.StopConducting()
	c.Update(5 * time.Second)
	if c.Beat() != 2 {
		t.Errorf("stopped conductor advanced to beat %d", c.Beat())
	}

	if err := c.BeginConducting(240); err != nil {
		t.Fatal(err)
	}
	if c.Beat() != 0 || c.SongPosition() != 0 || c.BPM() != 240 {
		t.Errorf("restart did not reset: beat=%d pos=%v bpm=%v", c.Beat(), c.SongPosition(), c.BPM())
	}
	if c.SecPerBeat() != 0.25 {
		t.Errorf("SecPerBeat() = %v, want 0.25", c.SecPerBeat())
	}
}
