// Package detector handles operation mode detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// SourceExtension is the file extension of mnemonic source files.
const SourceExtension = ".chasm"

// Detector handles operation mode detection from options and file extensions.
type Detector struct {
	logger *log.Logger
}

// New creates a new mode detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the operation mode from options or file auto-detection.
// An explicit mode flag takes precedence, otherwise source files are assembled
// and all other files are emulated.
func (d *Detector) Detect(opts options.Program) options.Mode {
	switch {
	case opts.Disassemble:
		return options.Disassemble
	case opts.Assemble:
		return options.Assemble
	}

	mode := d.detectFromFile(opts.Input)
	d.logger.Debug("Auto-detected mode",
		log.String("mode", string(mode)),
		log.String("file", opts.Input))
	return mode
}

// detectFromFile determines the operation mode based on file extension.
func (d *Detector) detectFromFile(filename string) options.Mode {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == SourceExtension {
		return options.Assemble
	}
	return options.Emulate
}
