package ui

import (
	"encoding/binary"
	"time"

	"github.com/beulard/chip8/internal/emu"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	sampleRate = 48000
	toneHz     = 440
	toneVolume = 3000 // out of 32767, kept low like the hardware buzzer
)

// beeperStream implements io.Reader for the ebiten audio player, producing
// 16-bit little-endian stereo frames: a square wave while the machine's
// sound timer is nonzero, silence otherwise.
type beeperStream struct {
	m     *emu.Machine
	phase float64
}

func (s *beeperStream) Read(p []byte) (int, error) {
	const step = toneHz / float64(sampleRate)
	active := s.m != nil && s.m.SoundActive()
	n := len(p) / 4 * 4
	for i := 0; i < n; i += 4 {
		var v int16
		if active {
			v = toneVolume
			if s.phase >= 0.5 {
				v = -toneVolume
			}
		}
		s.phase += step
		if s.phase >= 1 {
			s.phase -= 1
		}
		binary.LittleEndian.PutUint16(p[i:], uint16(v))
		binary.LittleEndian.PutUint16(p[i+2:], uint16(v))
	}
	return n, nil
}

// newBeeper starts a continuously playing audio stream. Tone gating happens
// inside the stream so the player never has to pause or resume.
func newBeeper(m *emu.Machine) (*audio.Player, error) {
	ctx := audio.NewContext(sampleRate)
	p, err := ctx.NewPlayer(&beeperStream{m: m})
	if err != nil {
		return nil, err
	}
	p.SetBufferSize(40 * time.Millisecond)
	p.Play()
	return p, nil
}
