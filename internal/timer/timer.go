// Package timer implements the two 8-bit hardware counters, decremented at a
// fixed 60 Hz cadence independent of instruction execution speed.
package timer

// Timers holds the delay and sound counters. Both count down toward zero,
// one step per Tick, and never underflow.
type Timers struct {
	delay byte
	sound byte
}

// New returns timers with both counters at zero.
func New() *Timers {
	return &Timers{}
}

// Tick decrements each nonzero counter by one. Ticking a zero counter is a
// no-op. The caller invokes this at 60 Hz.
func (t *Timers) Tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

// Delay returns the delay counter (FX07).
func (t *Timers) Delay() byte { return t.delay }

// SetDelay sets the delay counter (FX15).
func (t *Timers) SetDelay(v byte) { t.delay = v }

// SetSound sets the sound counter (FX18).
func (t *Timers) SetSound(v byte) { t.sound = v }

// SoundActive reports whether a tone should currently be audible. This is
// the only signal the audio collaborator sees.
func (t *Timers) SoundActive() bool { return t.sound > 0 }
