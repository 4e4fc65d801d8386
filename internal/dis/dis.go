// Package dis renders instruction words as one-line assembly strings for
// trace output and diagnostics. Opcode identification comes from the
// retrogolib CHIP-8 instruction table; only operand formatting lives here.
package dis

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Disassemble returns the assembly form of word, or a raw data directive
// when the word matches no opcode table entry.
func Disassemble(word uint16) string {
	op, ok := lookup(word)
	if !ok {
		return fmt.Sprintf(".word $%04X", word)
	}
	name := op.Instruction.Name
	if params := operands(op.Instruction, word); params != "" {
		return name + " " + params
	}
	return name
}

// lookup scans the first-nibble bucket of the opcode table for a mask match.
func lookup(word uint16) (chip8.Opcode, bool) {
	for _, op := range chip8.Opcodes[int(word>>12)] {
		if word&op.Info.Mask == op.Info.Value && op.Instruction != nil {
			return op, true
		}
	}
	return chip8.Opcode{}, false
}

func operands(ins *chip8.Instruction, word uint16) string {
	x := word >> 8 & 0xF
	y := word >> 4 & 0xF
	n := word & 0xF
	nn := word & 0xFF
	nnn := word & 0x0FFF

	switch ins {
	case chip8.ClsInst, chip8.RetInst:
		return ""
	case chip8.JpInst:
		if word>>12 == 0xB {
			return fmt.Sprintf("V0, $%03X", nnn)
		}
		return fmt.Sprintf("$%03X", nnn)
	case chip8.CallInst:
		return fmt.Sprintf("$%03X", nnn)
	case chip8.SeInst, chip8.SneInst:
		if word>>12 == 0x5 || word>>12 == 0x9 {
			return fmt.Sprintf("V%X, V%X", x, y)
		}
		return fmt.Sprintf("V%X, $%02X", x, nn)
	case chip8.LdInst:
		return loadOperands(word, x, y, nn, nnn)
	case chip8.AddInst:
		switch word >> 12 {
		case 0x7:
			return fmt.Sprintf("V%X, $%02X", x, nn)
		case 0xF:
			return fmt.Sprintf("I, V%X", x)
		}
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.OrInst, chip8.AndInst, chip8.XorInst, chip8.SubInst, chip8.SubnInst:
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.ShrInst, chip8.ShlInst:
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.RndInst:
		return fmt.Sprintf("V%X, $%02X", x, nn)
	case chip8.DrwInst:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, n)
	case chip8.SkpInst, chip8.SknpInst:
		return fmt.Sprintf("V%X", x)
	}
	return ""
}

// loadOperands formats the many LD encodings (6XNN, 8XY0, ANNN and the FX
// family) by their distinguishing nibbles.
func loadOperands(word, x, y, nn, nnn uint16) string {
	switch word >> 12 {
	case 0x6:
		return fmt.Sprintf("V%X, $%02X", x, nn)
	case 0x8:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xA:
		return fmt.Sprintf("I, $%03X", nnn)
	case 0xF:
		switch nn {
		case 0x07:
			return fmt.Sprintf("V%X, DT", x)
		case 0x0A:
			return fmt.Sprintf("V%X, K", x)
		case 0x15:
			return fmt.Sprintf("DT, V%X", x)
		case 0x18:
			return fmt.Sprintf("ST, V%X", x)
		case 0x29:
			return fmt.Sprintf("F, V%X", x)
		case 0x33:
			return fmt.Sprintf("B, V%X", x)
		case 0x55:
			return fmt.Sprintf("[I], V%X", x)
		case 0x65:
			return fmt.Sprintf("V%X, [I]", x)
		}
	}
	return ""
}
