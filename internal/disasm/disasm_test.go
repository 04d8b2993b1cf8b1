package disasm

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/assembler"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/program"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func disassemble(t *testing.T, opts options.Disassembler, rom []byte) (*program.Program, string) {
	t.Helper()

	var buf bytes.Buffer
	dis := New(log.NewTestLogger(t), opts)
	app, err := dis.Process(context.Background(), rom, &buf)
	assert.NoError(t, err)
	return app, buf.String()
}

func TestDisasm_Process(t *testing.T) {
	rom := []byte{
		0x00, 0xE0, // CLS
		0xA2, 0x08, // LD I, 520
		0x22, 0x0A, // CALL 522
		0x12, 0x02, // JP 514
		0xF0, 0x29, // LD F, V0
		0x00, 0xEE, // RET
	}

	app, output := disassemble(t, options.NewDisassembler(), rom)
	assert.Len(t, app.Offsets, 6)

	expected := `; CHIP-8 ROM disassembly
; ROM size: 12 bytes
; Code base address: $0200

  CLS                            ; $0200  00 E0

  LD I, 520                      ; $0202  A2 08  jump target
  CALL 522                       ; $0204  22 0A
  JP 514                         ; $0206  12 02
  LD F, V0                       ; $0208  F0 29  data reference

  RET                            ; $020A  00 EE  call target
`
	assert.Equal(t, expected, output)
}

func TestDisasm_CommentOptions(t *testing.T) {
	rom := []byte{0x12, 0x00}

	tests := []struct {
		name     string
		opts     options.Disassembler
		expected string
	}{
		{
			name:     "all",
			opts:     options.Disassembler{HexComments: true, OffsetComments: true},
			expected: "$0200  12 00  jump target",
		},
		{
			name:     "no offsets",
			opts:     options.Disassembler{HexComments: true},
			expected: "12 00  jump target",
		},
		{
			name:     "no hex",
			opts:     options.Disassembler{OffsetComments: true},
			expected: "$0200  jump target",
		},
		{
			name:     "none",
			opts:     options.Disassembler{},
			expected: "jump target",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := disassemble(t, tt.opts, rom)
			assert.Equal(t, tt.expected, app.Offsets[0].Comment)
		})
	}
}

func TestDisasm_Placeholders(t *testing.T) {
	rom := []byte{0x00, 0xE0, 0xFF, 0xFF, 0x60, 0x01, 0xAB}

	app, output := disassemble(t, options.Disassembler{}, rom)
	assert.Len(t, app.Offsets, 4)

	assert.True(t, app.Offsets[1].IsType(program.DataOffset))
	assert.Equal(t, "0xFFFF unknown opcode", app.Offsets[1].Comment)
	assert.True(t, app.Offsets[3].IsType(program.DataOffset))
	assert.Equal(t, "0xAB trailing byte", app.Offsets[3].Comment)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Equal(t, "; 0xFFFF unknown opcode", lines[len(lines)-3])
	assert.Equal(t, "  LD V0, 1", lines[len(lines)-2])
	assert.Equal(t, "; 0xAB trailing byte", lines[len(lines)-1])

	app, _ = disassemble(t, options.NewDisassembler(), rom)
	assert.Equal(t, "0xFFFF unknown opcode  $0202", app.Offsets[1].Comment)
}

func TestDisasm_TargetsOutsideOfRom(t *testing.T) {
	// jump past the end, into the middle of an opcode and below the program start
	rom := []byte{0x1F, 0x00, 0x12, 0x01, 0x11, 0x00}

	app, _ := disassemble(t, options.Disassembler{}, rom)
	for _, offset := range app.Offsets {
		assert.False(t, offset.IsType(program.JumpDestination))
		assert.Equal(t, "", offset.Comment)
	}
}

func TestDisasm_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dis := New(log.NewTestLogger(t), options.NewDisassembler())
	_, err := dis.Process(ctx, []byte{0x00, 0xE0}, &bytes.Buffer{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDisasm_EmptyRom(t *testing.T) {
	app, output := disassemble(t, options.NewDisassembler(), nil)
	assert.Empty(t, app.Offsets)
	assert.True(t, strings.HasPrefix(output, "; CHIP-8 ROM disassembly"))
}

// TestDisassembleAssembleRoundTrip checks that assembling the disassembly of a stream of
// valid opcodes yields the original bytes, with and without listing comments.
func TestDisassembleAssembleRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(0xC8, 0x200))

	for run := range 20 {
		rom := make([]byte, 0, 512)
		for len(rom) < cap(rom) {
			word := uint16(rng.UintN(0x10000))
			if _, err := chip8.DecodeWord(word); err != nil {
				continue
			}
			rom = append(rom, byte(word>>8), byte(word))
		}

		opts := options.NewDisassembler()
		if run%2 == 1 {
			opts = options.Disassembler{}
		}
		_, output := disassemble(t, opts, rom)

		assembled, err := assembler.AssembleString(output)
		assert.NoError(t, err)
		assert.Equal(t, rom, assembled)
	}
}
