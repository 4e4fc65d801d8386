// Command chip8 runs a CHIP-8 program in an ebiten window, or headless for
// regression checks against a known framebuffer checksum.
package main

import (
	"context"
	"flag"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"time"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	"github.com/beulard/chip8/internal/emu"
	"github.com/beulard/chip8/internal/quirks"
	"github.com/beulard/chip8/internal/ui"
)

type cliFlags struct {
	ROMPath string
	Profile string
	ClockHz int
	HiRes   bool

	Scale    int
	Title    string
	ShowGrid bool
	ShowFPS  bool

	// headless
	Headless bool
	Frames   int
	PNGOut   string
	Expect   string // expected framebuffer CRC32 hex
	Debug    bool
}

func parseFlags() cliFlags {
	var f cliFlags
	flag.StringVar(&f.ROMPath, "rom", "", "path to program image (.ch8)")
	flag.StringVar(&f.Profile, "profile", "modern", "quirk profile: modern or cosmac")
	flag.IntVar(&f.ClockHz, "clock", emu.DefaultClockHz, "instruction steps per second")
	flag.BoolVar(&f.HiRes, "hires", false, "128x64 display instead of 64x32")
	flag.IntVar(&f.Scale, "scale", 12, "window scale")
	flag.StringVar(&f.Title, "title", "chip8", "window title")
	flag.BoolVar(&f.ShowGrid, "grid", false, "draw pixel grid overlay")
	flag.BoolVar(&f.ShowFPS, "fps", false, "draw frame rate counter")
	flag.BoolVar(&f.Headless, "headless", false, "run without a window")
	flag.IntVar(&f.Frames, "frames", 300, "frames to run in headless mode")
	flag.StringVar(&f.PNGOut, "outpng", "", "write last framebuffer to PNG at path")
	flag.StringVar(&f.Expect, "expect", "", "assert framebuffer CRC32 (hex)")
	flag.BoolVar(&f.Debug, "debug", false, "debug logging")
	flag.Parse()
	return f
}

func parseProfile(name string) (quirks.Profile, error) {
	switch strings.ToLower(name) {
	case "", "modern":
		return quirks.Modern(), nil
	case "cosmac", "original":
		return quirks.Original(), nil
	}
	return quirks.Profile{}, fmt.Errorf("unknown quirk profile %q", name)
}

func runHeadless(ctx context.Context, logger *log.Logger, m *emu.Machine, f cliFlags) error {
	frames := f.Frames
	if frames <= 0 {
		frames = 1
	}

	start := time.Now()
	ran := 0
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := m.StepFrame(); err != nil {
			return err
		}
		ran++
	}
	dur := time.Since(start)

	pix := renderRGBA(m)
	crc := crc32.ChecksumIEEE(pix.Pix)
	logger.Info("headless run finished",
		log.Int("frames", ran),
		log.String("elapsed", dur.Truncate(time.Millisecond).String()),
		log.String("fb_crc32", fmt.Sprintf("%08x", crc)))

	if f.PNGOut != "" {
		if err := savePNG(pix, f.PNGOut); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		logger.Info("wrote framebuffer", log.String("path", f.PNGOut))
	}

	if f.Expect != "" {
		want := strings.TrimPrefix(strings.ToLower(f.Expect), "0x")
		got := fmt.Sprintf("%08x", crc)
		if got != want {
			return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return nil
}

func renderRGBA(m *emu.Machine) *image.RGBA {
	w, h := m.DisplaySize()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, on := range m.Framebuffer() {
		c := color.RGBA{0, 0, 0, 255}
		if on {
			c = color.RGBA{255, 255, 255, 255}
		}
		img.Set(i%w, i/w, c)
	}
	return img
}

func savePNG(img *image.RGBA, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func main() {
	ctx := app.Context()
	f := parseFlags()

	cfg := log.DefaultConfig()
	if f.Debug {
		cfg.Level = log.DebugLevel
	}
	logger := log.NewWithConfig(cfg)

	profile, err := parseProfile(f.Profile)
	if err != nil {
		logger.Fatal(err.Error())
	}

	m := emu.New(emu.Config{Profile: profile, ClockHz: f.ClockHz, HiRes: f.HiRes})
	if f.ROMPath == "" {
		logger.Fatal("-rom is required")
	}
	if err := m.LoadROMFromFile(f.ROMPath); err != nil {
		logger.Fatal("load program", log.Err(err))
	}
	logger.Debug("program loaded",
		log.String("rom", f.ROMPath),
		log.String("profile", f.Profile),
		log.Int("clock_hz", f.ClockHz))

	if f.Headless {
		if err := runHeadless(ctx, logger, m, f); err != nil {
			logger.Fatal("headless run", log.Err(err))
		}
		return
	}

	uiCfg := ui.Config{Title: f.Title, Scale: f.Scale, ShowGrid: f.ShowGrid, ShowFPS: f.ShowFPS}
	if err := ui.NewApp(uiCfg, m).Run(); err != nil {
		logger.Fatal("run", log.Err(err))
	}
}
