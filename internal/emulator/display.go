package emulator

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the monochrome 64x32 pixel matrix of the machine. Only the
// interpreter modifies the pixels, collaborators read them.
type Display struct {
	pixels [DisplayHeight][DisplayWidth]bool
	dirty  bool
}

// Pixel returns whether the pixel at the given position is set. Coordinates
// wrap around the display edges.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[wrap(y, DisplayHeight)][wrap(x, DisplayWidth)]
}

// Dirty returns whether the display changed since the last call of ClearDirty.
func (d *Display) Dirty() bool {
	return d.dirty
}

// ClearDirty resets the dirty flag after a frontend presented the display.
func (d *Display) ClearDirty() {
	d.dirty = false
}

// clear turns off all pixels.
func (d *Display) clear() {
	d.pixels = [DisplayHeight][DisplayWidth]bool{}
	d.dirty = true
}

// drawSprite XORs an 8 pixel wide sprite onto the display at the given position,
// wrapping around the display edges. It returns whether any set pixel was turned off.
func (d *Display) drawSprite(x, y uint8, sprite []byte) bool {
	collision := false

	for row, bits := range sprite {
		py := wrap(int(y)+row, DisplayHeight)
		for col := range 8 {
			if bits&(0x80>>col) == 0 {
				continue
			}

			px := wrap(int(x)+col, DisplayWidth)
			if d.pixels[py][px] {
				collision = true
			}
			d.pixels[py][px] = !d.pixels[py][px]
		}
	}

	if len(sprite) > 0 {
		d.dirty = true
	}
	return collision
}

func wrap(value, size int) int {
	value %= size
	if value < 0 {
		value += size
	}
	return value
}
