// Package loader handles ROM and source file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/emulator"
)

// Loader handles loading ROM and source files from disk.
type Loader struct{}

// New creates a new file loader.
func New() *Loader {
	return &Loader{}
}

// LoadROM reads a raw CHIP-8 ROM file. ROMs that do not fit into the program memory
// return an error wrapping emulator.ErrRomTooLarge.
func (l *Loader) LoadROM(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	// read one byte past the limit to detect oversized files without reading them completely
	data, err := io.ReadAll(io.LimitReader(file, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	return l.LoadFromBytes(data)
}

// LoadFromBytes validates ROM data that is already in memory.
func (l *Loader) LoadFromBytes(data []byte) ([]byte, error) {
	if len(data) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("%w: more than %d bytes", emulator.ErrRomTooLarge, chip8.MaxProgramSize)
	}
	return data, nil
}

// LoadSource reads a mnemonic source file.
func (l *Loader) LoadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading source file %s: %w", path, err)
	}
	return string(data), nil
}
