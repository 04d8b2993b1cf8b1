package assembler

import (
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestAssemble(t *testing.T) {
	source := `; test program
CLS
LD V0, 10      ; counter
LD I, 528
DRW V0, V1, 5

loop:
`
	// labels are not supported, the last line fails
	_, err := AssembleString(source)
	assert.Error(t, err)

	source = strings.TrimSuffix(source, "loop:\n") + "JP 512\n"
	output, err := AssembleString(source)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xE0, 0x60, 0x0A, 0xA2, 0x10, 0xD0, 0x15, 0x12, 0x00}, output)
}

func TestAssemble_Empty(t *testing.T) {
	output, err := AssembleString("; nothing\n\n")
	assert.NoError(t, err)
	assert.Empty(t, output)
}

func TestAssemble_CollectsAllLineErrors(t *testing.T) {
	source := "CLS\nNOP\nLD V1, 300\nRET\nDRW V1\n"

	output, err := AssembleString(source)
	assert.Error(t, err)
	assert.Nil(t, output)

	var parseErrs ParseErrors
	assert.True(t, errors.As(err, &parseErrs))
	assert.Len(t, parseErrs, 3)

	assert.Equal(t, 2, parseErrs[0].Line)
	assert.True(t, errors.Is(parseErrs[0], ErrUnsupportedMnemonic))
	assert.Equal(t, 3, parseErrs[1].Line)
	assert.True(t, errors.Is(parseErrs[1], chip8.ErrOperandOutOfRange))
	assert.Equal(t, 5, parseErrs[2].Line)
	assert.True(t, errors.Is(parseErrs[2], ErrOperandCount))

	assert.True(t, errors.Is(err, ErrOperandCount))
	assert.ErrorContains(t, err, "3 lines failed to assemble")
	assert.ErrorContains(t, err, "line 2: unsupported mnemonic 'NOP'")
}

func TestAssemble_SingleLineError(t *testing.T) {
	_, err := AssembleString("CLS\nJP\n")
	assert.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "line 2: "))

	var lineErr *LineError
	assert.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 2, lineErr.Line)
}

func TestAssemble_ProgramTooLarge(t *testing.T) {
	source := strings.Repeat("CLS\n", chip8.MaxProgramSize/chip8.OpcodeSize+1)
	_, err := AssembleString(source)
	assert.True(t, errors.Is(err, ErrProgramTooLarge))

	source = strings.Repeat("CLS\n", chip8.MaxProgramSize/chip8.OpcodeSize)
	output, err := AssembleString(source)
	assert.NoError(t, err)
	assert.Len(t, output, chip8.MaxProgramSize)
}
