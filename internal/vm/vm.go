// Package vm implements the CHIP-8 decode/execute engine and register file.
// One Step is one fetch-decode-execute cycle; every invariant violation
// surfaces as an error with enough context (PC, word, operands) to diagnose
// the run.
package vm

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/beulard/chip8/internal/display"
	"github.com/beulard/chip8/internal/keypad"
	"github.com/beulard/chip8/internal/memory"
	"github.com/beulard/chip8/internal/quirks"
	"github.com/beulard/chip8/internal/timer"
)

// StackDepth bounds the call stack.
const StackDepth = 16

var (
	// ErrStackOverflow is returned when a call exceeds StackDepth.
	ErrStackOverflow = errors.New("call stack overflow")

	// ErrStackUnderflow is returned by a return with no call outstanding.
	ErrStackUnderflow = errors.New("call stack underflow")
)

// VM holds the register file and executes decoded instructions against
// memory, display, timers and keypad. Registers are exported in the open,
// like hardware: V[0xF] doubles as the carry/borrow/collision flag.
type VM struct {
	V  [16]byte
	I  uint16
	PC uint16

	stack [StackDepth]uint16
	sp    int

	mem     *memory.Memory
	disp    *display.Display
	timers  *timer.Timers
	keys    *keypad.Keypad
	profile quirks.Profile

	// waitKey is the destination register of an in-flight FX0A, or -1.
	waitKey int
	// drawReady is set at each timer tick boundary and consumed by draws
	// under the display-wait profile.
	drawReady bool

	randByte func() byte
}

// New wires an engine to its state. The profile is fixed for the lifetime of
// the VM.
func New(mem *memory.Memory, disp *display.Display, timers *timer.Timers, keys *keypad.Keypad, profile quirks.Profile) *VM {
	return &VM{
		PC:       memory.ProgramStart,
		mem:      mem,
		disp:     disp,
		timers:   timers,
		keys:     keys,
		profile:  profile,
		waitKey:  -1,
		randByte: func() byte { return byte(rand.Uint32()) },
	}
}

// SetRand replaces the random byte source used by CXNN. Tests use this to
// make the instruction deterministic.
func (m *VM) SetRand(f func() byte) { m.randByte = f }

// WaitingForKey reports whether execution is suspended on the input-wait
// instruction. Timers keep ticking while this is true.
func (m *VM) WaitingForKey() bool { return m.waitKey >= 0 }

// TickBoundary marks that a 60 Hz tick has just fired. Under the
// display-wait profile this releases at most one pending sprite draw.
func (m *VM) TickBoundary() { m.drawReady = true }

// Step runs exactly one fetch-decode-execute cycle. A step taken while
// suspended (input-wait, or display-wait with no tick boundary yet) leaves
// all state unchanged. Any returned error is fatal to the run.
func (m *VM) Step() error {
	if m.waitKey >= 0 {
		key, ok := m.keys.JustPressed()
		if !ok {
			return nil
		}
		m.V[m.waitKey] = key
		m.waitKey = -1
		return nil
	}

	word, err := m.mem.ReadWord(m.PC)
	if err != nil {
		return fmt.Errorf("fetch at PC=%#04x: %w", m.PC, err)
	}
	in, err := Decode(word)
	if err != nil {
		return fmt.Errorf("decode at PC=%#04x: %w", m.PC, err)
	}

	// Display-wait: hold the instruction clock, not the timer clock.
	if in.Op == OpDraw && m.profile.DisplayWait && !m.drawReady {
		return nil
	}

	m.PC += 2
	if err := m.exec(in); err != nil {
		return fmt.Errorf("exec %#04x at PC=%#04x: %w", in.Word, m.PC-2, err)
	}
	return nil
}

func (m *VM) exec(in Instr) error {
	x, y := in.X, in.Y

	switch in.Op {
	case OpClear:
		m.disp.Clear()

	case OpReturn:
		if m.sp == 0 {
			return ErrStackUnderflow
		}
		m.sp--
		m.PC = m.stack[m.sp]

	case OpJump:
		m.PC = in.NNN

	case OpCall:
		if m.sp == StackDepth {
			return fmt.Errorf("%w: depth %d", ErrStackOverflow, StackDepth)
		}
		m.stack[m.sp] = m.PC
		m.sp++
		m.PC = in.NNN

	case OpSkipEqImm:
		if m.V[x] == in.NN {
			m.PC += 2
		}

	case OpSkipNeImm:
		if m.V[x] != in.NN {
			m.PC += 2
		}

	case OpSkipEqReg:
		if m.V[x] == m.V[y] {
			m.PC += 2
		}

	case OpLoadImm:
		m.V[x] = in.NN

	case OpAddImm:
		m.V[x] += in.NN

	case OpMove:
		m.V[x] = m.V[y]

	case OpOr:
		m.V[x] |= m.V[y]

	case OpAnd:
		m.V[x] &= m.V[y]

	case OpXor:
		m.V[x] ^= m.V[y]

	case OpAdd:
		sum := uint16(m.V[x]) + uint16(m.V[y])
		carry := byte(0)
		if sum > 0xFF {
			carry = 1
		}
		// Result first, flag second: X may be VF itself.
		m.V[x] = byte(sum)
		m.V[0xF] = carry

	case OpSub:
		noBorrow := byte(0)
		if m.V[x] >= m.V[y] {
			noBorrow = 1
		}
		m.V[x] -= m.V[y]
		m.V[0xF] = noBorrow

	case OpSubReverse:
		noBorrow := byte(0)
		if m.V[y] >= m.V[x] {
			noBorrow = 1
		}
		m.V[x] = m.V[y] - m.V[x]
		m.V[0xF] = noBorrow

	case OpShiftRight:
		if m.profile.ShiftSource {
			m.V[x] = m.V[y]
		}
		bit := m.V[x] & 1
		m.V[x] >>= 1
		m.V[0xF] = bit

	case OpShiftLeft:
		if m.profile.ShiftSource {
			m.V[x] = m.V[y]
		}
		bit := m.V[x] >> 7
		m.V[x] <<= 1
		m.V[0xF] = bit

	case OpSkipNeReg:
		if m.V[x] != m.V[y] {
			m.PC += 2
		}

	case OpLoadIndex:
		m.I = in.NNN

	case OpJumpOffset:
		reg := byte(0)
		if m.profile.JumpOffsetVX {
			reg = byte(in.NNN >> 8)
		}
		m.PC = in.NNN + uint16(m.V[reg])

	case OpRandom:
		m.V[x] = m.randByte() & in.NN

	case OpDraw:
		rows := make([]byte, in.N)
		for r := range rows {
			b, err := m.mem.ReadByte(m.I + uint16(r))
			if err != nil {
				return fmt.Errorf("sprite row %d: %w", r, err)
			}
			rows[r] = b
		}
		collided := m.disp.DrawSprite(int(m.V[x]), int(m.V[y]), rows)
		m.V[0xF] = 0
		if collided {
			m.V[0xF] = 1
		}
		m.drawReady = false

	case OpSkipKey:
		if m.keys.Pressed(m.V[x] & 0xF) {
			m.PC += 2
		}

	case OpSkipNoKey:
		if !m.keys.Pressed(m.V[x] & 0xF) {
			m.PC += 2
		}

	case OpReadDelay:
		m.V[x] = m.timers.Delay()

	case OpWaitKey:
		m.waitKey = int(x)

	case OpSetDelay:
		m.timers.SetDelay(m.V[x])

	case OpSetSound:
		m.timers.SetSound(m.V[x])

	case OpAddIndex:
		m.I += uint16(m.V[x])
		if m.I >= memory.Size {
			// Wrap per the 12-bit addressing width, flagging the overflow.
			m.V[0xF] = 1
			m.I &= memory.Size - 1
		}

	case OpFontChar:
		m.I = memory.FontStart + uint16(m.V[x]&0xF)*memory.GlyphSize

	case OpStoreBCD:
		v := m.V[x]
		digits := [3]byte{v / 100, v / 10 % 10, v % 10}
		for d, dv := range digits {
			if err := m.mem.WriteByte(m.I+uint16(d), dv); err != nil {
				return fmt.Errorf("bcd digit %d: %w", d, err)
			}
		}

	case OpStoreRegs:
		for r := byte(0); r <= x; r++ {
			if err := m.mem.WriteByte(m.I+uint16(r), m.V[r]); err != nil {
				return fmt.Errorf("store V%X: %w", r, err)
			}
		}
		if m.profile.IndexIncrement {
			m.I += uint16(x) + 1
		}

	case OpLoadRegs:
		for r := byte(0); r <= x; r++ {
			b, err := m.mem.ReadByte(m.I + uint16(r))
			if err != nil {
				return fmt.Errorf("load V%X: %w", r, err)
			}
			m.V[r] = b
		}
		if m.profile.IndexIncrement {
			m.I += uint16(x) + 1
		}

	default:
		// Decode produces only the tags above.
		return fmt.Errorf("%w: %#04x", ErrUnknownOpcode, in.Word)
	}
	return nil
}
