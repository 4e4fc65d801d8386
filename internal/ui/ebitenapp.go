// Package ui presents the machine in an ebiten window: scaled framebuffer,
// keyboard mapping to the 16-key pad, and the square-wave beeper. It only
// ever reads snapshots and pushes input; interpreter state stays owned by
// the machine.
package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/beulard/chip8/internal/emu"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Conventional QWERTY mapping of the 4x4 hex pad:
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   <-   Q W E R
//	7 8 9 E        A S D F
//	A 0 B F        Z X C V
var keyMap = map[ebiten.Key]byte{
	ebiten.KeyX: 0x0, ebiten.Key1: 0x1, ebiten.Key2: 0x2, ebiten.Key3: 0x3,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyA: 0x7,
	ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyZ: 0xA, ebiten.KeyC: 0xB,
	ebiten.Key4: 0xC, ebiten.KeyR: 0xD, ebiten.KeyF: 0xE, ebiten.KeyV: 0xF,
}

var (
	colorBackground = color.RGBA{10, 10, 10, 255}
	colorPixel      = color.RGBA{255, 255, 190, 255}
	colorGrid       = color.RGBA{50, 50, 50, 255}
)

type App struct {
	cfg    Config
	m      *emu.Machine
	tex    *ebiten.Image
	pix    []byte
	beeper *audio.Player
	paused bool
	// runErr holds the fatal engine error so Draw can keep showing the last
	// frame while the message is reported once by Run.
	runErr error
}

func NewApp(cfg Config, m *emu.Machine) *App {
	if cfg.Scale <= 0 {
		cfg.Scale = 12
	}
	w, h := m.DisplaySize()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w*cfg.Scale, h*cfg.Scale)
	return &App{cfg: cfg, m: m}
}

func (a *App) Run() error {
	beeper, err := newBeeper(a.m)
	if err != nil {
		return fmt.Errorf("audio init: %w", err)
	}
	a.beeper = beeper
	if err := ebiten.RunGame(a); err != nil {
		return err
	}
	return a.runErr
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	var mask uint16
	for key, pad := range keyMap {
		if ebiten.IsKeyPressed(key) {
			mask |= 1 << pad
		}
	}
	a.m.SetKeys(mask)

	// Pause toggle (P) and single-frame step while paused (N).
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}
	// F1 resets; R belongs to the hex pad.
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		if err := a.m.Reset(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		_ = a.saveScreenshot()
	}

	step := !a.paused || inpututil.IsKeyJustPressed(ebiten.KeyN)
	if step && a.runErr == nil {
		if err := a.m.StepFrame(); err != nil {
			// Freeze on the faulting frame instead of closing the window.
			a.runErr = err
			a.paused = true
		}
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	w, h := a.m.DisplaySize()
	if a.tex == nil {
		a.tex = ebiten.NewImage(w, h)
		a.pix = make([]byte, w*h*4)
	}
	fb := a.m.Framebuffer()
	for i, on := range fb {
		c := colorBackground
		if on {
			c = colorPixel
		}
		a.pix[i*4+0] = c.R
		a.pix[i*4+1] = c.G
		a.pix[i*4+2] = c.B
		a.pix[i*4+3] = 0xFF
	}
	a.tex.WritePixels(a.pix)

	var geo ebiten.GeoM
	geo.Scale(float64(a.cfg.Scale), float64(a.cfg.Scale))
	screen.DrawImage(a.tex, &ebiten.DrawImageOptions{GeoM: geo})

	if a.cfg.ShowGrid {
		a.drawGrid(screen, w, h)
	}
	if a.cfg.ShowFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.1f", ebiten.ActualFPS()), 5, 5)
	}
	if a.runErr != nil {
		ebitenutil.DebugPrintAt(screen, "halted: "+a.runErr.Error(), 5, 20)
	}
}

func (a *App) drawGrid(screen *ebiten.Image, w, h int) {
	s := float32(a.cfg.Scale)
	for x := 1; x < w; x++ {
		vector.StrokeLine(screen, float32(x)*s, 0, float32(x)*s, float32(h)*s, 1, colorGrid, false)
	}
	for y := 1; y < h; y++ {
		vector.StrokeLine(screen, 0, float32(y)*s, float32(w)*s, float32(y)*s, 1, colorGrid, false)
	}
}

func (a *App) Layout(outW, outH int) (int, int) {
	w, h := a.m.DisplaySize()
	return w * a.cfg.Scale, h * a.cfg.Scale
}

func (a *App) saveScreenshot() error {
	w, h := a.m.DisplaySize()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, on := range a.m.Framebuffer() {
		c := colorBackground
		if on {
			c = colorPixel
		}
		img.Set(i%w, i/w, c)
	}
	name := fmt.Sprintf("screenshot_%s.png", time.Now().Format("20060102_150405"))
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
