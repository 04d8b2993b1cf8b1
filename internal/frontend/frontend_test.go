package frontend

import (
	"encoding/binary"
	"image/color"
	"testing"

	"github.com/retroenv/chip8vm/internal/assembler"
	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/retrogolib/assert"
	"golang.org/x/image/colornames"
)

func TestKeymap(t *testing.T) {
	assert.Len(t, keymap, emulator.KeyCount)

	seen := map[uint8]bool{}
	for _, value := range keymap {
		assert.True(t, value < emulator.KeyCount)
		assert.False(t, seen[value])
		seen[value] = true
	}
}

func TestNewPalette(t *testing.T) {
	p, err := newPalette("White", "black")
	assert.NoError(t, err)
	assert.Equal(t, colornames.White, p.foreground)
	assert.Equal(t, colornames.Black, p.background)

	_, err = newPalette("nocolor", "black")
	assert.ErrorContains(t, err, "unsupported foreground color 'nocolor'")
	_, err = newPalette("white", "nocolor")
	assert.ErrorContains(t, err, "unsupported background color 'nocolor'")
}

func TestRenderDisplay(t *testing.T) {
	rom, err := assembler.AssembleString("LD F, V0\nDRW V0, V0, 5")
	assert.NoError(t, err)

	m := emulator.New(emulator.Config{})
	assert.NoError(t, m.LoadROM(rom))
	assert.NoError(t, m.Step())
	assert.NoError(t, m.Step())

	p := palette{
		foreground: color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xFF},
		background: color.RGBA{A: 0xFF},
	}
	pixels := make([]byte, emulator.DisplayWidth*emulator.DisplayHeight*4)
	renderDisplay(m.Display(), pixels, p)

	// the top row of the digit 0 sprite is 0xF0
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0xFF}, pixels[0:4])
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0xFF}, pixels[3*4:4*4])
	assert.Equal(t, []byte{0, 0, 0, 0xFF}, pixels[4*4:5*4])

	last := len(pixels) - 4
	assert.Equal(t, []byte{0, 0, 0, 0xFF}, pixels[last:])
}

func TestSquareWave(t *testing.T) {
	wave := newSquareWave(8, 2, 100)

	buf := make([]byte, 4*bytesPerFrame+3)
	n, err := wave.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 4*bytesPerFrame, n)

	var samples []int16
	for i := 0; i < n; i += 2 {
		samples = append(samples, int16(binary.LittleEndian.Uint16(buf[i:])))
	}
	assert.Equal(t, []int16{100, 100, 100, 100, -100, -100, -100, -100}, samples)

	// the phase continues over reads
	n, err = wave.Read(buf[:bytesPerFrame])
	assert.NoError(t, err)
	assert.Equal(t, bytesPerFrame, n)
	assert.Equal(t, int16(100), int16(binary.LittleEndian.Uint16(buf)))
}

func TestBeeperNil(t *testing.T) {
	var b *beeper
	b.play()
	b.pause()
	b.close()

	f := New(nil)
	f.Close()
}
