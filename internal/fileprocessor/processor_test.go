package fileprocessor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/pipeline"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestGenerateOutputFilename(t *testing.T) {
	tests := []struct {
		input string
		mode  options.Mode
		want  string
	}{
		{input: "pong.ch8", mode: options.Disassemble, want: "pong.chasm"},
		{input: "dir/pong.rom", mode: options.Disassemble, want: "dir/pong.chasm"},
		{input: "pong", mode: options.Disassemble, want: "pong.chasm"},
		{input: "pong.chasm", mode: options.Assemble, want: "pong_a.ch8"},
		{input: "pong.ch8", mode: options.Emulate, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input+"_"+string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateOutputFilename(tt.input, tt.mode))
		})
	}
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ch8", "b.ch8", "c.chasm"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{0x00, 0xE0}, 0o600))
	}

	files, err := GetFilesToProcess(&options.Program{
		Parameters: options.Parameters{Batch: filepath.Join(dir, "*.ch8")},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.ch8"), filepath.Join(dir, "b.ch8")}, files)

	files, err = GetFilesToProcess(&options.Program{
		Parameters: options.Parameters{Input: "single.ch8"},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"single.ch8"}, files)

	_, err = GetFilesToProcess(&options.Program{
		Parameters: options.Parameters{Batch: "[invalid"},
	})
	assert.Error(t, err)
}

func TestProcessFile(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := pipeline.New(logger, nil)
	dir := t.TempDir()

	rom := []byte{0x00, 0xE0, 0x60, 0x05, 0x12, 0x02}
	romFile := filepath.Join(dir, "test.ch8")
	assert.NoError(t, os.WriteFile(romFile, rom, 0o600))

	// disassemble to the derived name, then assemble the result again
	opts := options.Program{
		Parameters: options.Parameters{Input: romFile},
		Flags:      options.Flags{Disassemble: true, Quiet: true},
	}
	err := ProcessFile(context.Background(), logger, p, opts, options.NewDisassembler(), options.NewEmulator())
	assert.NoError(t, err)

	sourceFile := filepath.Join(dir, "test.chasm")
	_, err = os.Stat(sourceFile)
	assert.NoError(t, err)

	opts = options.Program{
		Parameters: options.Parameters{Input: sourceFile},
		Flags:      options.Flags{Quiet: true},
	}
	err = ProcessFile(context.Background(), logger, p, opts, options.NewDisassembler(), options.NewEmulator())
	assert.NoError(t, err)

	assembled, err := os.ReadFile(filepath.Join(dir, "test_a.ch8"))
	assert.NoError(t, err)
	assert.Equal(t, rom, assembled)
}

func TestProcessFile_EmptySource(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := pipeline.New(logger, nil)
	dir := t.TempDir()

	sourceFile := filepath.Join(dir, "empty.chasm")
	assert.NoError(t, os.WriteFile(sourceFile, []byte("; nothing to assemble\n"), 0o600))

	opts := options.Program{
		Parameters: options.Parameters{Input: sourceFile},
	}
	err := ProcessFile(context.Background(), logger, p, opts, options.NewDisassembler(), options.NewEmulator())
	assert.NoError(t, err)

	assembled, err := os.ReadFile(filepath.Join(dir, "empty"+AssembledSuffix))
	assert.NoError(t, err)
	assert.Empty(t, assembled)
}

func TestProcessFile_NoOutputOnFailure(t *testing.T) {
	var buf bytes.Buffer
	cfg := log.DefaultConfig()
	cfg.Output = &buf
	cfg.TimeFormat = "-"
	logger := log.NewWithConfig(cfg)
	p := pipeline.New(logger, nil)
	dir := t.TempDir()

	sourceFile := filepath.Join(dir, "broken.chasm")
	assert.NoError(t, os.WriteFile(sourceFile, []byte("CLS\nLD V16, 1\nJP 512\n"), 0o600))
	outputFile := filepath.Join(dir, "out.ch8")

	opts := options.Program{
		Parameters: options.Parameters{Input: sourceFile, Output: outputFile},
	}
	err := ProcessFile(context.Background(), logger, p, opts, options.NewDisassembler(), options.NewEmulator())
	assert.ErrorContains(t, err, "line 2")

	_, err = os.Stat(outputFile)
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, buf.String(), "Assembling line failed")
}

func TestPrintBanner(t *testing.T) {
	logger := log.NewTestLogger(t)

	PrintBanner(logger, options.Program{}, "chip8vm", "1.0.0", "0123456789abcdef", "2026-01-01")
	PrintBanner(logger, options.Program{Flags: options.Flags{Quiet: true}}, "chip8vm", "dev", "", "")
}
