package vm

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/beulard/chip8/internal/display"
	"github.com/beulard/chip8/internal/keypad"
	"github.com/beulard/chip8/internal/memory"
	"github.com/beulard/chip8/internal/quirks"
	"github.com/beulard/chip8/internal/timer"
)

// runOne executes a single instruction word against fresh state with the
// given register values and returns the VM.
func runOne(word uint16, a, b uint8) (*VM, error) {
	mem := memory.New()
	if err := mem.Load([]byte{byte(word >> 8), byte(word)}); err != nil {
		return nil, err
	}
	m := New(mem, display.New(), timer.New(), keypad.New(), quirks.Modern())
	m.V[0], m.V[1] = a, b
	if err := m.Step(); err != nil {
		return nil, err
	}
	return m, nil
}

func TestProperty_AddMatchesWideAddition(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("8XY4 wraps modulo 256 and flags the carry", prop.ForAll(
		func(a, b uint8) bool {
			m, err := runOne(0x8014, a, b)
			if err != nil {
				return false
			}
			wide := uint16(a) + uint16(b)
			wantFlag := byte(0)
			if wide > 0xFF {
				wantFlag = 1
			}
			return m.V[0] == byte(wide) && m.V[0xF] == wantFlag
		},
		gen.UInt8(),
		gen.UInt8(),
	))

	properties.Property("8XY5 wraps modulo 256 and flags no-borrow", prop.ForAll(
		func(a, b uint8) bool {
			m, err := runOne(0x8015, a, b)
			if err != nil {
				return false
			}
			wantFlag := byte(0)
			if a >= b {
				wantFlag = 1
			}
			return m.V[0] == a-b && m.V[0xF] == wantFlag
		},
		gen.UInt8(),
		gen.UInt8(),
	))

	properties.Property("8XY4 then 8XY5 with the same operand is the identity on VX", prop.ForAll(
		func(a, b uint8) bool {
			mem := memory.New()
			if err := mem.Load([]byte{0x80, 0x14, 0x80, 0x15}); err != nil {
				return false
			}
			m := New(mem, display.New(), timer.New(), keypad.New(), quirks.Modern())
			m.V[0], m.V[1] = a, b
			if err := m.Step(); err != nil {
				return false
			}
			if err := m.Step(); err != nil {
				return false
			}
			return m.V[0] == a
		},
		gen.UInt8(),
		gen.UInt8(),
	))

	properties.TestingRun(t)
}

func TestProperty_BCDReassembles(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("FX33 digits are decimal and reassemble to VX", prop.ForAll(
		func(v uint8) bool {
			mem := memory.New()
			if err := mem.Load([]byte{0xF0, 0x33}); err != nil {
				return false
			}
			m := New(mem, display.New(), timer.New(), keypad.New(), quirks.Modern())
			m.V[0] = v
			m.I = 0x300
			if err := m.Step(); err != nil {
				return false
			}
			var digits [3]byte
			for i := range digits {
				b, err := mem.ReadByte(0x300 + uint16(i))
				if err != nil {
					return false
				}
				if b > 9 {
					return false
				}
				digits[i] = b
			}
			return int(digits[0])*100+int(digits[1])*10+int(digits[2]) == int(v)
		},
		gen.UInt8(),
	))

	properties.TestingRun(t)
}
