// Package writer implements writing of disassembled programs as mnemonic source files.
package writer

import (
	"fmt"
	"io"

	"github.com/retroenv/chip8vm/internal/program"
)

// Writer writes a program in the mnemonic source format that the assembler reads.
type Writer struct {
	app    *program.Program
	writer io.Writer
}

// New creates a new writer.
func New(app *program.Program, writer io.Writer) *Writer {
	return &Writer{
		app:    app,
		writer: writer,
	}
}

// Write writes the comment header and all offsets of the program.
func (w Writer) Write() error {
	if err := w.WriteCommentHeader(); err != nil {
		return err
	}

	for i, offset := range w.app.Offsets {
		// separate subroutines and jump destinations like labelled blocks
		if i > 0 && offset.IsType(program.JumpDestination|program.CallDestination) {
			if _, err := fmt.Fprintln(w.writer); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}

		if err := w.writeOffset(offset); err != nil {
			return err
		}
	}
	return nil
}

// WriteCommentHeader writes the ROM size and code base address as comments to the output.
func (w Writer) WriteCommentHeader() error {
	if _, err := fmt.Fprintf(w.writer, "; CHIP-8 ROM disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; ROM size: %d bytes\n", w.app.Size); err != nil {
		return fmt.Errorf("writing rom size: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Code base address: $%04X\n\n", w.app.CodeBaseAddress); err != nil {
		return fmt.Errorf("writing code base address: %w", err)
	}
	return nil
}

func (w Writer) writeOffset(offset program.Offset) error {
	if offset.IsType(program.CodeOffset) {
		if err := w.writeCodeLine(offset); err != nil {
			return fmt.Errorf("writing code line: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(w.writer, "; %s\n", offset.Comment); err != nil {
		return fmt.Errorf("writing data line: %w", err)
	}
	return nil
}

func (w Writer) writeCodeLine(offset program.Offset) error {
	if offset.Comment == "" {
		if _, err := fmt.Fprintf(w.writer, "  %s\n", offset.Code); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	} else {
		if _, err := fmt.Fprintf(w.writer, "  %-30s ; %s\n", offset.Code, offset.Comment); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}
