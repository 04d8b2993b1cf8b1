// Package verification verifies that the generated source file recreates the input ROM.
package verification

import (
	"fmt"
	"os"

	"github.com/retroenv/chip8vm/internal/assembler"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// DebugOutputFile is the file that the reassembled ROM is written to in debug mode.
const DebugOutputFile = "debug.ch8"

// VerifyOutput verifies that assembling the generated source recreates the exact input ROM.
func VerifyOutput(logger *log.Logger, options options.Program, rom []byte, source string) error {
	destination, err := assembler.AssembleString(source)
	if err != nil {
		return fmt.Errorf("reassembling disassembled source: %w", err)
	}

	if options.Debug {
		if err := os.WriteFile(DebugOutputFile, destination, 0o644); err != nil {
			return fmt.Errorf("writing file '%s': %w", DebugOutputFile, err)
		}
	}

	if err := checkBufferEqual(logger, rom, destination); err != nil {
		return fmt.Errorf("rom mismatch: %w", err)
	}
	return nil
}

func checkBufferEqual(logger *log.Logger, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs uint64
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs < 10 {
			logger.Error("Offset mismatch",
				log.Hex("offset", i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches", diffs)
}
