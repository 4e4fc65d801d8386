// Package keypad models the 16-key logical input state. The input
// collaborator pushes a bitmask of currently pressed keys; the engine polls
// it once per instruction step and can ask about press transitions for the
// input-wait instruction.
package keypad

// Keypad tracks the current and previous 16-key state. Bit k of a mask is
// set while logical key k (0x0-0xF) is held.
type Keypad struct {
	pressed uint16
	prev    uint16
}

// New returns a keypad with no keys pressed.
func New() *Keypad {
	return &Keypad{}
}

// Set replaces the current key mask, remembering the old mask so press
// transitions remain observable. Called once per input poll.
func (k *Keypad) Set(mask uint16) {
	k.prev = k.pressed
	k.pressed = mask
}

// Pressed reports whether key (0x0-0xF) is currently held.
func (k *Keypad) Pressed(key byte) bool {
	return k.pressed&(1<<(key&0xF)) != 0
}

// JustPressed returns the lowest key that transitioned from released to
// pressed between the two most recent polls, or false when none did.
func (k *Keypad) JustPressed() (byte, bool) {
	edges := k.pressed &^ k.prev
	if edges == 0 {
		return 0, false
	}
	for key := byte(0); key < 16; key++ {
		if edges&(1<<key) != 0 {
			return key, true
		}
	}
	return 0, false
}
