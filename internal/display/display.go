// Package display implements the monochrome pixel framebuffer. Pixels are
// mutated only by XOR sprite composition and Clear; the presentation layer
// reads snapshots and never writes.
package display

// Base mode dimensions. Hi-res variants double both.
const (
	BaseWidth  = 64
	BaseHeight = 32
)

// Display is a boolean pixel grid with XOR-blit sprite drawing.
type Display struct {
	w, h   int
	pixels []bool
}

// New returns an all-unset buffer in 64x32 base mode.
func New() *Display {
	return NewSize(BaseWidth, BaseHeight)
}

// NewHiRes returns an all-unset buffer in doubled 128x64 resolution.
func NewHiRes() *Display {
	return NewSize(BaseWidth*2, BaseHeight*2)
}

// NewSize returns an all-unset buffer with the given dimensions.
func NewSize(w, h int) *Display {
	return &Display{w: w, h: h, pixels: make([]bool, w*h)}
}

// Width returns the grid width in pixels.
func (d *Display) Width() int { return d.w }

// Height returns the grid height in pixels.
func (d *Display) Height() int { return d.h }

// Clear unsets every pixel.
func (d *Display) Clear() {
	for i := range d.pixels {
		d.pixels[i] = false
	}
}

// Pixel reports whether the pixel at (x, y) is set. Coordinates wrap modulo
// the grid dimensions.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[d.index(x, y)]
}

// DrawSprite XOR-composites an N-row sprite at (x, y), one byte per row with
// the leftmost pixel in bit 7. The origin wraps modulo the grid dimensions
// and so does every drawn pixel; nothing is clipped. It reports whether any
// set pixel was flipped to unset (a collision).
func (d *Display) DrawSprite(x, y int, rows []byte) bool {
	collided := false
	for dy, row := range rows {
		for dx := 0; dx < 8; dx++ {
			if row&(0x80>>dx) == 0 {
				continue
			}
			i := d.index(x+dx, y+dy)
			if d.pixels[i] {
				collided = true
			}
			d.pixels[i] = !d.pixels[i]
		}
	}
	return collided
}

// Snapshot copies the current pixel grid, row-major. The copy is safe to
// hand to the presentation collaborator.
func (d *Display) Snapshot() []bool {
	out := make([]bool, len(d.pixels))
	copy(out, d.pixels)
	return out
}

func (d *Display) index(x, y int) int {
	x %= d.w
	if x < 0 {
		x += d.w
	}
	y %= d.h
	if y < 0 {
		y += d.h
	}
	return y*d.w + x
}
