// Command vmrunner executes a program headless with fine-grained control
// over the two clocks, optionally printing a disassembled instruction trace.
// Useful for driving conformance test programs to completion.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	"github.com/beulard/chip8/internal/dis"
	"github.com/beulard/chip8/internal/emu"
	"github.com/beulard/chip8/internal/quirks"
)

func main() {
	ctx := app.Context()

	romPath := flag.String("rom", "", "path to program image (.ch8)")
	profileName := flag.String("profile", "modern", "quirk profile: modern or cosmac")
	clock := flag.Int("clock", emu.DefaultClockHz, "instruction steps per second")
	steps := flag.Int("steps", 1_000_000, "max instruction steps to run")
	trace := flag.Bool("trace", false, "print disassembled instructions and registers")
	timeout := flag.Duration("timeout", 0, "optional wall-clock timeout (e.g. 30s); 0 disables")
	flag.Parse()

	logger := log.NewWithConfig(log.DefaultConfig())

	if *romPath == "" {
		logger.Fatal("-rom is required")
	}

	var profile quirks.Profile
	switch strings.ToLower(*profileName) {
	case "", "modern":
		profile = quirks.Modern()
	case "cosmac", "original":
		profile = quirks.Original()
	default:
		logger.Fatal("unknown quirk profile", log.String("profile", *profileName))
	}

	m := emu.New(emu.Config{Profile: profile, ClockHz: *clock})
	if err := m.LoadROMFromFile(*romPath); err != nil {
		logger.Fatal("load program", log.Err(err))
	}

	// Interleave the two clocks by hand: one timer tick per stepsPerTick
	// instruction steps approximates the configured rate against 60 Hz.
	stepsPerTick := *clock / emu.TickRate
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}

	start := time.Now()
	var deadline time.Time
	if *timeout > 0 {
		deadline = start.Add(*timeout)
	}

	for i := 0; i < *steps; i++ {
		select {
		case <-ctx.Done():
			fmt.Printf("\nInterrupted after %d steps.\n", i)
			return
		default:
		}
		if i%stepsPerTick == 0 {
			m.TickTimers()
		}
		if *trace {
			core := m.VM()
			if word, err := m.Memory().ReadWord(core.PC); err == nil {
				fmt.Printf("PC=%04X %-18s I=%03X V=%02X %02X %02X %02X %02X %02X %02X %02X %02X %02X %02X %02X %02X %02X %02X %02X\n",
					core.PC, dis.Disassemble(word), core.I,
					core.V[0], core.V[1], core.V[2], core.V[3], core.V[4], core.V[5], core.V[6], core.V[7],
					core.V[8], core.V[9], core.V[10], core.V[11], core.V[12], core.V[13], core.V[14], core.V[15])
			}
		}
		if err := m.Step(); err != nil {
			logger.Error("halted", log.Err(err))
			fmt.Printf("\nDone: steps=%d elapsed=%s\n", i+1, time.Since(start).Truncate(time.Millisecond))
			os.Exit(1)
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			fmt.Printf("\nTimeout after %s.\n", time.Since(start).Truncate(time.Millisecond))
			os.Exit(2)
		}
	}
	fmt.Printf("\nDone: steps=%d elapsed=%s\n", *steps, time.Since(start).Truncate(time.Millisecond))
}
