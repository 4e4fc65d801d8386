package vm

import (
	"errors"
	"testing"
)

func TestDecode_Table(t *testing.T) {
	cases := []struct {
		word uint16
		op   Op
	}{
		{0x00E0, OpClear},
		{0x00EE, OpReturn},
		{0x1234, OpJump},
		{0x2ABC, OpCall},
		{0x3A42, OpSkipEqImm},
		{0x4A42, OpSkipNeImm},
		{0x5AB0, OpSkipEqReg},
		{0x6AFF, OpLoadImm},
		{0x7A01, OpAddImm},
		{0x8AB0, OpMove},
		{0x8AB1, OpOr},
		{0x8AB2, OpAnd},
		{0x8AB3, OpXor},
		{0x8AB4, OpAdd},
		{0x8AB5, OpSub},
		{0x8AB6, OpShiftRight},
		{0x8AB7, OpSubReverse},
		{0x8ABE, OpShiftLeft},
		{0x9AB0, OpSkipNeReg},
		{0xA123, OpLoadIndex},
		{0xB123, OpJumpOffset},
		{0xCA0F, OpRandom},
		{0xDAB5, OpDraw},
		{0xEA9E, OpSkipKey},
		{0xEAA1, OpSkipNoKey},
		{0xFA07, OpReadDelay},
		{0xFA0A, OpWaitKey},
		{0xFA15, OpSetDelay},
		{0xFA18, OpSetSound},
		{0xFA1E, OpAddIndex},
		{0xFA29, OpFontChar},
		{0xFA33, OpStoreBCD},
		{0xFA55, OpStoreRegs},
		{0xFA65, OpLoadRegs},
	}
	for _, c := range cases {
		in, err := Decode(c.word)
		if err != nil {
			t.Fatalf("decode %#04x: %v", c.word, err)
		}
		if in.Op != c.op {
			t.Fatalf("decode %#04x got op %d want %d", c.word, in.Op, c.op)
		}
	}
}

func TestDecode_Operands(t *testing.T) {
	in, err := Decode(0xDAB5)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if in.X != 0xA || in.Y != 0xB || in.N != 5 {
		t.Fatalf("operands got X=%X Y=%X N=%X want A B 5", in.X, in.Y, in.N)
	}
	in, _ = Decode(0x6A42)
	if in.NN != 0x42 {
		t.Fatalf("NN got %02x want 42", in.NN)
	}
	in, _ = Decode(0x1ABC)
	if in.NNN != 0xABC {
		t.Fatalf("NNN got %03x want abc", in.NNN)
	}
}

func TestDecode_UnknownWords(t *testing.T) {
	for _, word := range []uint16{
		0x0000, // no machine-code calls
		0x0123,
		0x00E1,
		0x5AB1, // 5XYN requires N=0
		0x9AB5,
		0x8AB8, // no such ALU minor
		0x8ABF,
		0xEA00,
		0xEAFF,
		0xFA00,
		0xFAFF,
	} {
		if _, err := Decode(word); !errors.Is(err, ErrUnknownOpcode) {
			t.Fatalf("decode %#04x got %v want ErrUnknownOpcode", word, err)
		}
	}
}
