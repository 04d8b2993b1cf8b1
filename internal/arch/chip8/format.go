package chip8

import (
	"strconv"
	"strings"
)

// RegisterName returns the mnemonic name of a V register, using the decimal index.
func RegisterName(index uint8) string {
	return "V" + strconv.Itoa(int(index))
}

// Format returns the mnemonic text of an instruction, for example "DRW V1, V2, 5".
// The output is parsed back into the same instruction by the assembler.
func Format(ins Instruction) string {
	if ins.IsNil() {
		return ""
	}

	operands := ins.op.Operands()
	if len(operands) == 0 {
		return ins.op.Name()
	}

	var buf strings.Builder
	buf.WriteString(ins.op.Name())
	buf.WriteByte(' ')

	for i, operand := range operands {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(FormatOperand(ins, operand))
	}
	return buf.String()
}

// FormatOperand returns the text of one operand slot of an instruction.
func FormatOperand(ins Instruction, operand Operand) string {
	switch operand.Kind {
	case OperandX:
		return RegisterName(ins.x)
	case OperandY:
		return RegisterName(ins.y)
	case OperandN:
		return strconv.Itoa(int(ins.n))
	case OperandKK:
		return strconv.Itoa(int(ins.kk))
	case OperandNNN:
		return strconv.Itoa(int(ins.nnn))
	case OperandKeyword:
		return operand.Keyword
	default:
		return ""
	}
}
