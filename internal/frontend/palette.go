package frontend

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/retroenv/chip8vm/internal/emulator"
	"golang.org/x/image/colornames"
)

// palette contains the colors of set and cleared pixels.
type palette struct {
	foreground color.RGBA
	background color.RGBA
}

// newPalette looks up the SVG color names of the foreground and background.
func newPalette(foreground, background string) (palette, error) {
	fg, ok := colornames.Map[strings.ToLower(foreground)]
	if !ok {
		return palette{}, fmt.Errorf("unsupported foreground color '%s'", foreground)
	}
	bg, ok := colornames.Map[strings.ToLower(background)]
	if !ok {
		return palette{}, fmt.Errorf("unsupported background color '%s'", background)
	}
	return palette{foreground: fg, background: bg}, nil
}

// renderDisplay converts the display to RGBA pixels.
func renderDisplay(display *emulator.Display, pixels []byte, p palette) {
	for y := range emulator.DisplayHeight {
		for x := range emulator.DisplayWidth {
			c := p.background
			if display.Pixel(x, y) {
				c = p.foreground
			}

			i := (y*emulator.DisplayWidth + x) * 4
			pixels[i] = c.R
			pixels[i+1] = c.G
			pixels[i+2] = c.B
			pixels[i+3] = c.A
		}
	}
}
