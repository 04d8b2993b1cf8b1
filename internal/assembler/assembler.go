// Package assembler translates CHIP-8 mnemonic source text into bytecode.
package assembler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
)

var (
	// ErrUnsupportedMnemonic is returned for a mnemonic that no opcode uses.
	ErrUnsupportedMnemonic = errors.New("unsupported mnemonic")

	// ErrOperandCount is returned when no variant of a mnemonic takes the given
	// number of operands.
	ErrOperandCount = errors.New("wrong operand count")

	// ErrInvalidOperand is returned for an operand token that does not fit the
	// syntax of any variant of the mnemonic.
	ErrInvalidOperand = errors.New("invalid operand")

	// ErrProgramTooLarge is returned when the assembled program does not fit into
	// the memory above the program start address.
	ErrProgramTooLarge = errors.New("program too large")
)

// LineError describes a source line that failed to assemble.
type LineError struct {
	Line    int    // 1-based line number
	Message string // description of the failure
	Err     error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ParseErrors contains the errors of all failing lines of a source, in line order.
type ParseErrors []*LineError

func (e ParseErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}

	messages := make([]string, 0, len(e))
	for _, lineErr := range e {
		messages = append(messages, lineErr.Error())
	}
	return fmt.Sprintf("%d lines failed to assemble: %s", len(e), strings.Join(messages, "; "))
}

// Unwrap allows errors.Is and errors.As to match any of the line errors.
func (e ParseErrors) Unwrap() []error {
	errs := make([]error, 0, len(e))
	for _, lineErr := range e {
		errs = append(errs, lineErr)
	}
	return errs
}

// Assemble parses the source line by line and returns the encoded program.
// Parsing continues after a failing line so that all errors are reported at
// once, in which case the returned error is of type ParseErrors and no bytes
// are returned.
func Assemble(r io.Reader) ([]byte, error) {
	var (
		output []byte
		errs   ParseErrors
	)

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++

		ins, ok, err := ParseLine(scanner.Text())
		if err != nil {
			errs = append(errs, &LineError{
				Line:    lineNumber,
				Message: err.Error(),
				Err:     err,
			})
			continue
		}
		if !ok {
			continue
		}

		b := chip8.EncodeBytes(ins)
		output = append(output, b[:]...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	if len(output) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("%w: %d bytes exceed %d", ErrProgramTooLarge, len(output), chip8.MaxProgramSize)
	}
	return output, nil
}

// AssembleString assembles the given source text.
func AssembleString(source string) ([]byte, error) {
	return Assemble(strings.NewReader(source))
}
