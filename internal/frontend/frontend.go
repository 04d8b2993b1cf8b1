// Package frontend implements the windowed emulator frontend that presents the display,
// plays the sound timer tone and maps the keyboard to the CHIP-8 keypad.
package frontend

import (
	"context"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// WindowTitle is the title of the emulator window.
const WindowTitle = "chip8vm"

// Frontend runs emulation sessions in a window.
type Frontend struct {
	logger *log.Logger

	mu     sync.Mutex
	beeper *beeper
}

// New creates a new frontend.
func New(logger *log.Logger) *Frontend {
	return &Frontend{
		logger: logger,
	}
}

// Run opens the emulator window and drives the machine until the window is closed, the
// machine halts, the cycle limit is reached or the context is canceled.
func (f *Frontend) Run(ctx context.Context, machine *emulator.Machine, scheduler *emulator.Scheduler,
	opts options.Emulator) error {

	palette, err := newPalette(opts.Foreground, opts.Background)
	if err != nil {
		return err
	}

	b, err := f.openBeeper()
	if err != nil {
		f.logger.Warn("Sound output disabled", log.Err(err))
	}

	g := newGame(ctx, machine, scheduler, palette, b)

	ebiten.SetWindowSize(emulator.DisplayWidth*opts.Scale, emulator.DisplayHeight*opts.Scale)
	ebiten.SetWindowTitle(WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	b.pause()
	return g.err
}

// Close releases the audio player. It is safe to call Close multiple times.
func (f *Frontend) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.beeper != nil {
		f.beeper.close()
		f.beeper = nil
	}
}

// openBeeper returns the beeper of the frontend, the audio context can only be created
// once per process so the beeper is shared between sessions.
func (f *Frontend) openBeeper() (*beeper, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.beeper != nil {
		return f.beeper, nil
	}

	b, err := newBeeper()
	if err != nil {
		return nil, err
	}
	f.beeper = b
	return b, nil
}
