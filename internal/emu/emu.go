// Package emu wires the interpreter core into a Machine and drives its two
// clocks: the instruction clock at a configurable rate and the 60 Hz timer
// clock, interleaved cooperatively on whatever loop calls StepFrame.
package emu

import (
	"fmt"
	"os"

	"github.com/beulard/chip8/internal/display"
	"github.com/beulard/chip8/internal/keypad"
	"github.com/beulard/chip8/internal/memory"
	"github.com/beulard/chip8/internal/timer"
	"github.com/beulard/chip8/internal/vm"
)

// TickRate is the fixed timer frequency in Hz.
const TickRate = 60

// Machine owns the interpreter state and exposes the narrow surface the
// presentation, audio and input collaborators are allowed to touch.
type Machine struct {
	cfg Config

	mem    *memory.Memory
	disp   *display.Display
	timers *timer.Timers
	keys   *keypad.Keypad
	core   *vm.VM

	program []byte
	romPath string

	// fractional instruction budget carried between frames, in units of
	// 1/TickRate instructions.
	stepDebt int
}

// New builds a machine for the given configuration. No program is loaded
// yet; Step and StepFrame are valid but will fetch zeroes and fail decode.
func New(cfg Config) *Machine {
	if cfg.ClockHz <= 0 {
		cfg.ClockHz = DefaultClockHz
	}
	m := &Machine{cfg: cfg}
	m.reset()
	return m
}

func (m *Machine) reset() {
	m.mem = memory.New()
	if m.cfg.HiRes {
		m.disp = display.NewHiRes()
	} else {
		m.disp = display.New()
	}
	m.timers = timer.New()
	m.keys = keypad.New()
	m.core = vm.New(m.mem, m.disp, m.timers, m.keys, m.cfg.Profile)
	m.stepDebt = 0
}

// LoadProgram places a program image at the load offset and resets all
// execution state. The image is kept so Reset can restart the same program.
func (m *Machine) LoadProgram(data []byte) error {
	m.reset()
	if err := m.mem.Load(data); err != nil {
		return err
	}
	m.program = append([]byte(nil), data...)
	return nil
}

// LoadROMFromFile reads a program image from disk and loads it.
func (m *Machine) LoadROMFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := m.LoadProgram(data); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	m.romPath = path
	return nil
}

// ROMPath returns the path of the currently loaded program file, if any.
func (m *Machine) ROMPath() string { return m.romPath }

// Reset restarts the currently loaded program from a cold state.
func (m *Machine) Reset() error {
	if m.program == nil {
		m.reset()
		return nil
	}
	return m.LoadProgram(m.program)
}

// SetKeys replaces the 16-key input state. Bit k is set while logical key k
// is held.
func (m *Machine) SetKeys(mask uint16) { m.keys.Set(mask) }

// StepFrame advances the machine by one 60 Hz frame: the timers tick once,
// then the instruction clock runs its share of steps for this frame
// (ClockHz/TickRate, with the remainder carried over). The first error from
// the engine aborts the frame and is fatal to the run.
func (m *Machine) StepFrame() error {
	m.timers.Tick()
	m.core.TickBoundary()

	m.stepDebt += m.cfg.ClockHz
	steps := m.stepDebt / TickRate
	m.stepDebt %= TickRate
	for i := 0; i < steps; i++ {
		if err := m.core.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes a single instruction cycle, leaving the timer clock alone.
// Tools that drive the two clocks themselves use this with TickTimers.
func (m *Machine) Step() error { return m.core.Step() }

// TickTimers fires one 60 Hz tick.
func (m *Machine) TickTimers() {
	m.timers.Tick()
	m.core.TickBoundary()
}

// Framebuffer returns a snapshot of the pixel grid, row-major.
func (m *Machine) Framebuffer() []bool { return m.disp.Snapshot() }

// DisplaySize returns the pixel grid dimensions.
func (m *Machine) DisplaySize() (w, h int) { return m.disp.Width(), m.disp.Height() }

// SoundActive reports whether the tone should currently be audible.
func (m *Machine) SoundActive() bool { return m.timers.SoundActive() }

// WaitingForKey reports whether execution is suspended on the input-wait
// instruction.
func (m *Machine) WaitingForKey() bool { return m.core.WaitingForKey() }

// VM exposes the engine for tests and tools.
func (m *Machine) VM() *vm.VM { return m.core }

// Memory exposes the address space for tests and tools.
func (m *Machine) Memory() *memory.Memory { return m.mem }
