package emulator

import (
	"errors"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// The stack and memory errors are shared with the retrogolib CHIP-8 package, so
// errors.Is matches both.
var (
	// ErrStackOverflow is returned when a CALL is executed with a full stack.
	ErrStackOverflow = chip8cpu.ErrStackOverflow

	// ErrStackUnderflow is returned when a RET is executed with an empty stack.
	ErrStackUnderflow = chip8cpu.ErrStackUnderflow

	// ErrMemoryOutOfBounds is returned for a memory access past the last address.
	ErrMemoryOutOfBounds = chip8cpu.ErrMemoryOutOfBounds
)

var (
	// ErrRomTooLarge is returned when a ROM does not fit into the program memory.
	ErrRomTooLarge = errors.New("rom too large")

	// ErrHalted is returned by Step after the machine halted. It wraps the error
	// that caused the halt.
	ErrHalted = errors.New("machine halted")

	// ErrCycleLimit is returned by the scheduler when the configured number of
	// cycles has been executed.
	ErrCycleLimit = errors.New("cycle limit reached")
)
