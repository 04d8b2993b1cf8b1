package assembler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
)

// commentStart contains the characters that start a comment running to the end of the line.
const commentStart = ";#"

// keywordAliases lists alternative spellings accepted for operand keywords.
var keywordAliases = map[string][]string{
	"[I]": {"I"},
}

// operandValues collects the numeric operand values of one candidate match.
type operandValues struct {
	x, y, n, kk, nnn int
}

// ParseLine parses one line of mnemonic source. The returned bool is false for
// lines that do not contain an instruction, such as blank or comment lines.
func ParseLine(line string) (chip8.Instruction, bool, error) {
	if i := strings.IndexAny(line, commentStart); i >= 0 {
		line = line[:i]
	}

	tokens := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(tokens) == 0 {
		return chip8.Instruction{}, false, nil
	}

	mnemonic, operands := tokens[0], tokens[1:]
	candidates := chip8.LookupMnemonic(mnemonic)
	if len(candidates) == 0 {
		return chip8.Instruction{}, false, fmt.Errorf("%w '%s'", ErrUnsupportedMnemonic, mnemonic)
	}

	ins, err := matchCandidates(candidates, operands)
	if err != nil {
		return chip8.Instruction{}, false, err
	}
	return ins, true, nil
}

// matchCandidates returns the instruction of the first candidate Op whose operand
// syntax matches. If none matches, an out of range error is preferred over a
// syntax error as it is the more specific diagnosis.
func matchCandidates(candidates []chip8.Op, operands []string) (chip8.Instruction, error) {
	var rangeErr, syntaxErr error
	countMatched := false

	for _, op := range candidates {
		if len(op.Operands()) != len(operands) {
			continue
		}
		countMatched = true

		ins, err := matchOperands(op, operands)
		if err == nil {
			return ins, nil
		}

		switch {
		case errors.Is(err, chip8.ErrOperandOutOfRange):
			if rangeErr == nil {
				rangeErr = err
			}
		case syntaxErr == nil:
			syntaxErr = err
		}
	}

	if !countMatched {
		return chip8.Instruction{}, fmt.Errorf("%w: %s does not take %d operands",
			ErrOperandCount, candidates[0].Name(), len(operands))
	}
	if rangeErr != nil {
		return chip8.Instruction{}, rangeErr
	}
	return chip8.Instruction{}, syntaxErr
}

// matchOperands matches the operand tokens against the operand syntax of the Op
// and creates the instruction.
func matchOperands(op chip8.Op, operands []string) (chip8.Instruction, error) {
	var values operandValues

	for i, operand := range op.Operands() {
		token := operands[i]

		var err error
		switch operand.Kind {
		case chip8.OperandX:
			values.x, err = parseRegister(token)
		case chip8.OperandY:
			values.y, err = parseRegister(token)
		case chip8.OperandN:
			values.n, err = parseNumber(token)
		case chip8.OperandKK:
			values.kk, err = parseNumber(token)
		case chip8.OperandNNN:
			values.nnn, err = parseNumber(token)
		case chip8.OperandKeyword:
			err = matchKeyword(operand.Keyword, token)
		}
		if err != nil {
			return chip8.Instruction{}, err
		}
	}

	return chip8.New(op, values.forShape(op.Shape())...)
}

// forShape returns the values in the operand order expected by chip8.New.
func (v operandValues) forShape(shape chip8.Shape) []int {
	switch shape {
	case chip8.ShapeNNN:
		return []int{v.nnn}
	case chip8.ShapeX:
		return []int{v.x}
	case chip8.ShapeXKK:
		return []int{v.x, v.kk}
	case chip8.ShapeXY:
		return []int{v.x, v.y}
	case chip8.ShapeXYN:
		return []int{v.x, v.y, v.n}
	default:
		return nil
	}
}

func matchKeyword(keyword, token string) error {
	if strings.EqualFold(keyword, token) {
		return nil
	}
	for _, alias := range keywordAliases[keyword] {
		if strings.EqualFold(alias, token) {
			return nil
		}
	}
	return fmt.Errorf("%w '%s': expected %s", ErrInvalidOperand, token, keyword)
}

// parseRegister parses a V register name. The index is decimal, V0 to V15, the
// hexadecimal forms VA to VF are accepted as well.
func parseRegister(token string) (int, error) {
	if len(token) < 2 || (token[0] != 'V' && token[0] != 'v') {
		return 0, fmt.Errorf("%w '%s': expected register", ErrInvalidOperand, token)
	}

	index := token[1:]
	if len(index) == 1 {
		if value, err := strconv.ParseUint(index, 16, 8); err == nil {
			return int(value), nil
		}
	}

	value, err := strconv.ParseUint(index, 10, 8)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: register %s", chip8.ErrOperandOutOfRange, token)
		}
		return 0, fmt.Errorf("%w '%s': expected register", ErrInvalidOperand, token)
	}
	if value >= chip8.RegisterCount {
		return 0, fmt.Errorf("%w: register %s", chip8.ErrOperandOutOfRange, token)
	}
	return int(value), nil
}

// parseNumber parses an unsigned number in decimal, hexadecimal with a 0x or $
// prefix, or binary with a 0b or % prefix.
func parseNumber(token string) (int, error) {
	digits, base := token, 10
	lower := strings.ToLower(token)

	switch {
	case strings.HasPrefix(lower, "0x"):
		digits, base = token[2:], 16
	case strings.HasPrefix(lower, "$"):
		digits, base = token[1:], 16
	case strings.HasPrefix(lower, "0b"):
		digits, base = token[2:], 2
	case strings.HasPrefix(lower, "%"):
		digits, base = token[1:], 2
	}

	value, err := strconv.ParseUint(digits, base, 16)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: number %s", chip8.ErrOperandOutOfRange, token)
		}
		return 0, fmt.Errorf("%w '%s': expected number", ErrInvalidOperand, token)
	}
	return int(value), nil
}
