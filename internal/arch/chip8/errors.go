package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOpcode is matched by every UnknownOpcodeError.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrOperandOutOfRange is returned when an operand does not fit its bit width.
	ErrOperandOutOfRange = errors.New("operand out of range")

	// ErrOperandCount is returned when an instruction is constructed with the wrong
	// number of operands for its shape.
	ErrOperandCount = errors.New("wrong operand count")

	// ErrInvalidOp is returned when constructing an instruction from an unknown Op.
	ErrInvalidOp = errors.New("invalid op")
)

// UnknownOpcodeError reports a 16-bit value that does not match any opcode family.
type UnknownOpcodeError struct {
	Opcode uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode 0x%04X", e.Opcode)
}

// Is makes errors.Is(err, ErrUnknownOpcode) succeed.
func (e *UnknownOpcodeError) Is(target error) bool {
	return target == ErrUnknownOpcode
}
