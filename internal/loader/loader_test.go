package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoadROM(t *testing.T) {
	t.Run("load rom file", func(t *testing.T) {
		tmpFile := createTempFile(t, "test.ch8", []byte{0x00, 0xE0, 0x12, 0x00})

		data, err := New().LoadROM(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x00, 0xE0, 0x12, 0x00}, data)
	})

	t.Run("load largest rom", func(t *testing.T) {
		tmpFile := createTempFile(t, "max.ch8", make([]byte, chip8.MaxProgramSize))

		data, err := New().LoadROM(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, data, chip8.MaxProgramSize)
	})

	t.Run("error on rom too large", func(t *testing.T) {
		tmpFile := createTempFile(t, "large.ch8", make([]byte, chip8.MaxProgramSize+1))

		_, err := New().LoadROM(tmpFile)
		assert.True(t, errors.Is(err, emulator.ErrRomTooLarge))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := New().LoadROM("/nonexistent/file.ch8")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestLoadFromBytes(t *testing.T) {
	data, err := New().LoadFromBytes([]byte{0x60, 0x01})
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x01}, data)

	_, err = New().LoadFromBytes(make([]byte, 4096))
	assert.True(t, errors.Is(err, emulator.ErrRomTooLarge))
}

func TestLoadSource(t *testing.T) {
	tmpFile := createTempFile(t, "test.chasm", []byte("CLS\nJP 512\n"))

	source, err := New().LoadSource(tmpFile)
	assert.NoError(t, err)
	assert.Equal(t, "CLS\nJP 512\n", source)

	_, err = New().LoadSource(filepath.Join(t.TempDir(), "missing.chasm"))
	assert.Error(t, err)
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}
