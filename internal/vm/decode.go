package vm

import (
	"errors"
	"fmt"
)

// ErrUnknownOpcode is returned when an instruction word matches no entry in
// the opcode table.
var ErrUnknownOpcode = errors.New("unknown opcode")

// Op identifies one operation of the closed instruction set.
type Op int

const (
	OpClear      Op = iota // 00E0
	OpReturn               // 00EE
	OpJump                 // 1NNN
	OpCall                 // 2NNN
	OpSkipEqImm            // 3XNN
	OpSkipNeImm            // 4XNN
	OpSkipEqReg            // 5XY0
	OpLoadImm              // 6XNN
	OpAddImm               // 7XNN
	OpMove                 // 8XY0
	OpOr                   // 8XY1
	OpAnd                  // 8XY2
	OpXor                  // 8XY3
	OpAdd                  // 8XY4
	OpSub                  // 8XY5
	OpShiftRight           // 8XY6
	OpSubReverse           // 8XY7
	OpShiftLeft            // 8XYE
	OpSkipNeReg            // 9XY0
	OpLoadIndex            // ANNN
	OpJumpOffset           // BNNN
	OpRandom               // CXNN
	OpDraw                 // DXYN
	OpSkipKey              // EX9E
	OpSkipNoKey            // EXA1
	OpReadDelay            // FX07
	OpWaitKey              // FX0A
	OpSetDelay             // FX15
	OpSetSound             // FX18
	OpAddIndex             // FX1E
	OpFontChar             // FX29
	OpStoreBCD             // FX33
	OpStoreRegs            // FX55
	OpLoadRegs             // FX65
)

// Instr is a decoded instruction: the operation tag plus every operand field
// the word can carry. Handlers read only the fields their encoding defines.
type Instr struct {
	Op   Op
	X, Y byte   // register selectors (second and third nibbles)
	N    byte   // low nibble
	NN   byte   // low byte
	NNN  uint16 // low 12 bits
	Word uint16 // raw instruction word
}

// Decode maps a raw instruction word to its tagged variant. Any nibble
// pattern outside the closed table is an error; there are no silent no-ops.
func Decode(word uint16) (Instr, error) {
	in := Instr{
		X:    byte(word >> 8 & 0xF),
		Y:    byte(word >> 4 & 0xF),
		N:    byte(word & 0xF),
		NN:   byte(word),
		NNN:  word & 0x0FFF,
		Word: word,
	}

	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			in.Op = OpClear
			return in, nil
		case 0x00EE:
			in.Op = OpReturn
			return in, nil
		}
	case 0x1:
		in.Op = OpJump
		return in, nil
	case 0x2:
		in.Op = OpCall
		return in, nil
	case 0x3:
		in.Op = OpSkipEqImm
		return in, nil
	case 0x4:
		in.Op = OpSkipNeImm
		return in, nil
	case 0x5:
		if in.N == 0 {
			in.Op = OpSkipEqReg
			return in, nil
		}
	case 0x6:
		in.Op = OpLoadImm
		return in, nil
	case 0x7:
		in.Op = OpAddImm
		return in, nil
	case 0x8:
		switch in.N {
		case 0x0:
			in.Op = OpMove
			return in, nil
		case 0x1:
			in.Op = OpOr
			return in, nil
		case 0x2:
			in.Op = OpAnd
			return in, nil
		case 0x3:
			in.Op = OpXor
			return in, nil
		case 0x4:
			in.Op = OpAdd
			return in, nil
		case 0x5:
			in.Op = OpSub
			return in, nil
		case 0x6:
			in.Op = OpShiftRight
			return in, nil
		case 0x7:
			in.Op = OpSubReverse
			return in, nil
		case 0xE:
			in.Op = OpShiftLeft
			return in, nil
		}
	case 0x9:
		if in.N == 0 {
			in.Op = OpSkipNeReg
			return in, nil
		}
	case 0xA:
		in.Op = OpLoadIndex
		return in, nil
	case 0xB:
		in.Op = OpJumpOffset
		return in, nil
	case 0xC:
		in.Op = OpRandom
		return in, nil
	case 0xD:
		in.Op = OpDraw
		return in, nil
	case 0xE:
		switch in.NN {
		case 0x9E:
			in.Op = OpSkipKey
			return in, nil
		case 0xA1:
			in.Op = OpSkipNoKey
			return in, nil
		}
	case 0xF:
		switch in.NN {
		case 0x07:
			in.Op = OpReadDelay
			return in, nil
		case 0x0A:
			in.Op = OpWaitKey
			return in, nil
		case 0x15:
			in.Op = OpSetDelay
			return in, nil
		case 0x18:
			in.Op = OpSetSound
			return in, nil
		case 0x1E:
			in.Op = OpAddIndex
			return in, nil
		case 0x29:
			in.Op = OpFontChar
			return in, nil
		case 0x33:
			in.Op = OpStoreBCD
			return in, nil
		case 0x55:
			in.Op = OpStoreRegs
			return in, nil
		case 0x65:
			in.Op = OpLoadRegs
			return in, nil
		}
	}
	return Instr{Word: word}, fmt.Errorf("%w: %#04x", ErrUnknownOpcode, word)
}
