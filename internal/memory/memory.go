// Package memory implements the 4 KiB flat address space. The low 512 bytes
// are reserved for interpreter data (the built-in font lives at 0x050);
// programs are written at 0x200 and executed from there.
package memory

import (
	"errors"
	"fmt"
)

const (
	// Size is the total addressable memory in bytes (0x000-0xFFF).
	Size = 4096

	// ProgramStart is the load offset and initial program counter.
	ProgramStart = 0x200

	// FontStart is where the built-in hex digit glyphs are placed.
	FontStart = 0x050

	// MaxProgramSize is the largest loadable program image.
	MaxProgramSize = Size - ProgramStart
)

var (
	// ErrOutOfRange is returned for any access outside 0x000-0xFFF. It
	// indicates an engine defect or a malformed program, never user input.
	ErrOutOfRange = errors.New("memory access out of range")

	// ErrProgramTooLarge is returned when a program image does not fit in
	// the space above ProgramStart.
	ErrProgramTooLarge = errors.New("program image too large")
)

// Memory is a pure state container with bounds-checked accessors.
type Memory struct {
	ram [Size]byte
}

// New returns zeroed memory with the font glyphs installed at FontStart.
func New() *Memory {
	m := &Memory{}
	copy(m.ram[FontStart:], Font[:])
	return m
}

// Load writes a program image at ProgramStart. The rest of the program area
// is cleared so a reload starts from a clean state.
func (m *Memory) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	for i := ProgramStart; i < Size; i++ {
		m.ram[i] = 0
	}
	copy(m.ram[ProgramStart:], program)
	return nil
}

// ReadByte returns the byte at addr.
func (m *Memory) ReadByte(addr uint16) (byte, error) {
	if addr >= Size {
		return 0, fmt.Errorf("%w: read at %#04x", ErrOutOfRange, addr)
	}
	return m.ram[addr], nil
}

// WriteByte stores v at addr.
func (m *Memory) WriteByte(addr uint16, v byte) error {
	if addr >= Size {
		return fmt.Errorf("%w: write at %#04x", ErrOutOfRange, addr)
	}
	m.ram[addr] = v
	return nil
}

// ReadWord returns the big-endian 16-bit word at addr. Instruction fetch
// goes through here.
func (m *Memory) ReadWord(addr uint16) (uint16, error) {
	if addr+1 >= Size || addr+1 < addr {
		return 0, fmt.Errorf("%w: word read at %#04x", ErrOutOfRange, addr)
	}
	return uint16(m.ram[addr])<<8 | uint16(m.ram[addr+1]), nil
}
