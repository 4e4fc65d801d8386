// Package quirks defines the behavioral profile an interpreter run is locked
// to. Historical CHIP-8 interpreters disagree on the semantics of a handful of
// instructions; a Profile picks one side of each divergence and stays fixed
// for the lifetime of a run.
package quirks

// Profile is an immutable set of behavior selections consulted by the
// decode/execute engine. Only the four instruction families below are
// affected; every other instruction behaves identically under any profile.
type Profile struct {
	// ShiftSource selects the 8XY6/8XYE operand: when set, VY is copied into
	// VX before the shift (original hardware); when clear, VX is shifted in
	// place and Y is ignored.
	ShiftSource bool

	// IndexIncrement leaves I incremented by X+1 after FX55/FX65 (original
	// hardware); when clear, I is unchanged by the block copy.
	IndexIncrement bool

	// JumpOffsetVX makes BNNN add the register selected by the high nibble
	// of NNN (original hardware); when clear, V0 is always added.
	JumpOffsetVX bool

	// DisplayWait defers every DXYN until the next timer tick boundary,
	// bounding the draw rate to the 60 Hz tick (original hardware); when
	// clear, draws execute immediately.
	DisplayWait bool
}

// Modern returns the profile of later derivative interpreters (CHIP-48 and
// descendants). This is the default.
func Modern() Profile {
	return Profile{}
}

// Original returns the profile matching the original hardware interpreter.
func Original() Profile {
	return Profile{
		ShiftSource:    true,
		IndexIncrement: true,
		JumpOffsetVX:   true,
		DisplayWait:    true,
	}
}
