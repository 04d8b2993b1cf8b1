// Package program represents a disassembled CHIP-8 program.
package program

import (
	"fmt"
	"strings"
)

// Offset defines the content of a program offset, either a decoded instruction
// or data bytes that could not be decoded.
type Offset struct {
	Address uint16 // memory address of the first byte
	Data    []byte // instruction or data bytes

	Type OffsetType

	Code    string // mnemonic of the instruction, empty for data
	Comment string
}

// Program defines a CHIP-8 program as a sequence of offsets.
type Program struct {
	Offsets []Offset
	Size    int // size of the ROM in bytes

	CodeBaseAddress uint16
}

// New creates a new program for a ROM of the given size.
func New(size int, codeBaseAddress uint16) *Program {
	return &Program{
		Offsets:         make([]Offset, 0, (size+1)/2),
		Size:            size,
		CodeBaseAddress: codeBaseAddress,
	}
}

// HexCodeComment returns the data bytes of the offset as hex values.
func (o *Offset) HexCodeComment() (string, error) {
	buf := &strings.Builder{}

	for i, b := range o.Data {
		if i > 0 {
			buf.WriteByte(' ')
		}
		if _, err := fmt.Fprintf(buf, "%02X", b); err != nil {
			return "", fmt.Errorf("writing hex comment: %w", err)
		}
	}

	return buf.String(), nil
}
