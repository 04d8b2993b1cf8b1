package chip8

import (
	"fmt"
)

// Operand limits by bit width.
const (
	maxNibble  = 0xF
	maxByte    = 0xFF
	maxAddress = MaxAddress
)

// Instruction is one decoded CHIP-8 instruction. It carries the Op and only the
// operand fields the Op's shape uses, all other fields are zero. Instructions are
// comparable with ==.
//
// Instructions can only be created by the validating constructors or by Decode,
// so every Instruction holds in-range operands and encodes without loss.
type Instruction struct {
	op  Op
	x   uint8
	y   uint8
	n   uint8
	kk  uint8
	nnn uint16
}

// New creates an instruction for the given Op. The operands are passed in the order
// of the Op's shape: NNN; X; X, KK; X, Y; X, Y, N.
func New(op Op, operands ...int) (Instruction, error) {
	if !op.Valid() {
		return Instruction{}, fmt.Errorf("%w: %d", ErrInvalidOp, op)
	}

	shape := op.Shape()
	if len(operands) != shape.operandCount() {
		return Instruction{}, fmt.Errorf("%w: %s expects %d operands, got %d",
			ErrOperandCount, op, shape.operandCount(), len(operands))
	}

	ins := Instruction{op: op}
	var err error

	switch shape {
	case ShapeNone:

	case ShapeNNN:
		ins.nnn, err = checkAddress(op, operands[0])

	case ShapeX:
		ins.x, err = checkRegister(operands[0])

	case ShapeXKK:
		if ins.x, err = checkRegister(operands[0]); err == nil {
			ins.kk, err = checkRange("byte", operands[1], maxByte)
		}

	case ShapeXY:
		if ins.x, err = checkRegister(operands[0]); err == nil {
			ins.y, err = checkRegister(operands[1])
		}

	case ShapeXYN:
		if ins.x, err = checkRegister(operands[0]); err == nil {
			if ins.y, err = checkRegister(operands[1]); err == nil {
				ins.n, err = checkRange("nibble", operands[2], maxNibble)
			}
		}
	}

	if err != nil {
		return Instruction{}, fmt.Errorf("creating %s instruction: %w", op, err)
	}
	return ins, nil
}

// Implied returns an instruction without operands, such as CLS or RET.
func Implied(op Op) (Instruction, error) {
	return New(op)
}

// Address returns an instruction with a 12-bit address operand.
func Address(op Op, nnn int) (Instruction, error) {
	return New(op, nnn)
}

// Register returns an instruction with a single register operand.
func Register(op Op, x int) (Instruction, error) {
	return New(op, x)
}

// RegisterByte returns an instruction with a register and an 8-bit immediate.
func RegisterByte(op Op, x, kk int) (Instruction, error) {
	return New(op, x, kk)
}

// RegisterPair returns an instruction with two register operands.
func RegisterPair(op Op, x, y int) (Instruction, error) {
	return New(op, x, y)
}

// Draw returns a DRW instruction.
func Draw(x, y, n int) (Instruction, error) {
	return New(Drw, x, y, n)
}

// MustNew is like New but panics on invalid operands. It is intended for
// instruction literals in tests and tables.
func MustNew(op Op, operands ...int) Instruction {
	ins, err := New(op, operands...)
	if err != nil {
		panic(err)
	}
	return ins
}

func checkRegister(value int) (uint8, error) {
	if value < 0 || value > maxNibble {
		return 0, fmt.Errorf("%w: register V%d", ErrOperandOutOfRange, value)
	}
	return uint8(value), nil
}

func checkRange(kind string, value, limit int) (uint8, error) {
	if value < 0 || value > limit {
		return 0, fmt.Errorf("%w: %s %d exceeds %d", ErrOperandOutOfRange, kind, value, limit)
	}
	return uint8(value), nil
}

func checkAddress(op Op, value int) (uint16, error) {
	if value < 0 || value > maxAddress {
		return 0, fmt.Errorf("%w: address %d exceeds %d", ErrOperandOutOfRange, value, maxAddress)
	}
	// SYS 0x0E0 and SYS 0x0EE would encode as CLS and RET.
	if op == Sys && (value == int(Cls.Pattern()) || value == int(Ret.Pattern())) {
		return 0, fmt.Errorf("%w: address %d is reserved", ErrOperandOutOfRange, value)
	}
	return uint16(value), nil
}

// Op returns the instruction variant.
func (i Instruction) Op() Op {
	return i.op
}

// Name returns the upper-case mnemonic.
func (i Instruction) Name() string {
	return i.op.Name()
}

// Shape returns the operand shape.
func (i Instruction) Shape() Shape {
	return i.op.Shape()
}

// X returns the X register index.
func (i Instruction) X() uint8 {
	return i.x
}

// Y returns the Y register index.
func (i Instruction) Y() uint8 {
	return i.y
}

// N returns the 4-bit immediate.
func (i Instruction) N() uint8 {
	return i.n
}

// KK returns the 8-bit immediate.
func (i Instruction) KK() uint8 {
	return i.kk
}

// NNN returns the 12-bit address.
func (i Instruction) NNN() uint16 {
	return i.nnn
}

// IsNil returns true if the instruction is the zero value.
func (i Instruction) IsNil() bool {
	return !i.op.Valid()
}

// IsJump returns true if the instruction is an unconditional jump.
func (i Instruction) IsJump() bool {
	return i.op == Jp || i.op == JpV0
}

// IsCall returns true if the instruction is a call instruction.
func (i Instruction) IsCall() bool {
	return i.op == Call
}

// IsReturn returns true if the instruction is a return instruction.
func (i Instruction) IsReturn() bool {
	return i.op == Ret
}

// IsSkip returns true if the instruction is a conditional skip instruction.
func (i Instruction) IsSkip() bool {
	switch i.op {
	case SeByte, SneByte, SeReg, SneReg, Skp, Sknp:
		return true
	default:
		return false
	}
}

// ReferencesAddress returns the absolute address the instruction points at,
// for JP, CALL and LD I. JP V0 is excluded as its target depends on V0.
func (i Instruction) ReferencesAddress() (uint16, bool) {
	switch i.op {
	case Jp, Call, LdI:
		return i.nnn, true
	default:
		return 0, false
	}
}

// String returns the instruction in mnemonic form.
func (i Instruction) String() string {
	return Format(i)
}
