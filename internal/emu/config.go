package emu

import "github.com/beulard/chip8/internal/quirks"

// DefaultClockHz is the default instruction rate. Historical interpreters
// ran somewhere between a few hundred and a thousand steps per second; 700
// is the conventional middle ground.
const DefaultClockHz = 700

// Config contains settings that affect interpreter behavior. The quirk
// profile is fixed for the lifetime of a run.
type Config struct {
	Profile quirks.Profile
	ClockHz int  // instruction steps per second
	HiRes   bool // 128x64 display instead of 64x32
}
