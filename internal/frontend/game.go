package frontend

import (
	"context"
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/chip8vm/internal/emulator"
)

// game implements ebiten.Game for one emulation session.
type game struct {
	ctx       context.Context
	machine   *emulator.Machine
	scheduler *emulator.Scheduler
	palette   palette
	beeper    *beeper

	image  *ebiten.Image // reused 64x32 framebuffer canvas
	pixels []byte        // RGBA pixels of the framebuffer
	paused bool
	err    error // error that ended the session
}

func newGame(ctx context.Context, machine *emulator.Machine, scheduler *emulator.Scheduler,
	colors palette, beeper *beeper) *game {

	return &game{
		ctx:       ctx,
		machine:   machine,
		scheduler: scheduler,
		palette:   colors,
		beeper:    beeper,
		pixels:    make([]byte, emulator.DisplayWidth*emulator.DisplayHeight*4),
	}
}

// Update forwards the key state and runs the cycles and timer ticks of one frame.
func (g *game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}

	for key, value := range keymap {
		g.machine.SetKey(value, ebiten.IsKeyPressed(key))
	}

	if g.paused {
		g.beeper.pause()
		return nil
	}

	frame := time.Second / time.Duration(ebiten.TPS())
	if err := g.scheduler.Advance(frame); err != nil {
		g.beeper.pause()
		if !errors.Is(err, emulator.ErrCycleLimit) {
			g.err = err
		}
		return ebiten.Termination
	}

	if g.machine.SoundTimer() > 0 {
		g.beeper.play()
	} else {
		g.beeper.pause()
	}
	return nil
}

// Draw copies the display to the screen, the pixels are only converted if the display
// changed since the last frame.
func (g *game) Draw(screen *ebiten.Image) {
	if g.image == nil {
		g.image = ebiten.NewImage(emulator.DisplayWidth, emulator.DisplayHeight)
		renderDisplay(g.machine.Display(), g.pixels, g.palette)
		g.image.WritePixels(g.pixels)
	}

	display := g.machine.Display()
	if display.Dirty() {
		renderDisplay(display, g.pixels, g.palette)
		g.image.WritePixels(g.pixels)
		display.ClearDirty()
	}

	screen.DrawImage(g.image, nil)

	if g.paused {
		ebitenutil.DebugPrint(screen, "PAUSED")
	}
}

// Layout returns the CHIP-8 resolution, ebiten scales it to the window size.
func (g *game) Layout(_, _ int) (int, int) {
	return emulator.DisplayWidth, emulator.DisplayHeight
}
