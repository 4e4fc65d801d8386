package dis

import (
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDisassemble(t *testing.T) {
	cases := []struct {
		word uint16
		want string
	}{
		{0x00E0, chip8.ClsInst.Name},
		{0x00EE, chip8.RetInst.Name},
		{0x1234, chip8.JpInst.Name + " $234"},
		{0x2ABC, chip8.CallInst.Name + " $ABC"},
		{0x3A42, chip8.SeInst.Name + " VA, $42"},
		{0x4A42, chip8.SneInst.Name + " VA, $42"},
		{0x5AB0, chip8.SeInst.Name + " VA, VB"},
		{0x6A42, chip8.LdInst.Name + " VA, $42"},
		{0x7A01, chip8.AddInst.Name + " VA, $01"},
		{0x8AB0, chip8.LdInst.Name + " VA, VB"},
		{0x8AB1, chip8.OrInst.Name + " VA, VB"},
		{0x8AB4, chip8.AddInst.Name + " VA, VB"},
		{0x8AB5, chip8.SubInst.Name + " VA, VB"},
		{0x8AB6, chip8.ShrInst.Name + " VA, VB"},
		{0x8AB7, chip8.SubnInst.Name + " VA, VB"},
		{0x8ABE, chip8.ShlInst.Name + " VA, VB"},
		{0x9AB0, chip8.SneInst.Name + " VA, VB"},
		{0xA123, chip8.LdInst.Name + " I, $123"},
		{0xB123, chip8.JpInst.Name + " V0, $123"},
		{0xCA0F, chip8.RndInst.Name + " VA, $0F"},
		{0xDAB5, chip8.DrwInst.Name + " VA, VB, $5"},
		{0xEA9E, chip8.SkpInst.Name + " VA"},
		{0xEAA1, chip8.SknpInst.Name + " VA"},
		{0xFA07, chip8.LdInst.Name + " VA, DT"},
		{0xFA0A, chip8.LdInst.Name + " VA, K"},
		{0xFA15, chip8.LdInst.Name + " DT, VA"},
		{0xFA18, chip8.LdInst.Name + " ST, VA"},
		{0xFA1E, chip8.AddInst.Name + " I, VA"},
		{0xFA29, chip8.LdInst.Name + " F, VA"},
		{0xFA33, chip8.LdInst.Name + " B, VA"},
		{0xFA55, chip8.LdInst.Name + " [I], VA"},
		{0xFA65, chip8.LdInst.Name + " VA, [I]"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Disassemble(c.word))
	}
}

func TestDisassemble_UnknownWord(t *testing.T) {
	assert.Equal(t, ".word $0000", Disassemble(0x0000))
	assert.Equal(t, ".word $8AB8", Disassemble(0x8AB8))
}
