// Package disasm implements a CHIP-8 disassembler that converts ROM bytes to mnemonic source.
package disasm

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/program"
	"github.com/retroenv/chip8vm/internal/writer"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	options options.Disassembler

	jumpDestinations set.Set[uint16]
	callDestinations set.Set[uint16]
	dataReferences   set.Set[uint16]
}

// New creates a new disassembler.
func New(logger *log.Logger, options options.Disassembler) *Disasm {
	return &Disasm{
		logger:  logger,
		options: options,
	}
}

// Process disassembles the ROM in 2 byte steps starting at the program start address and
// writes the resulting mnemonic source to the writer.
func (dis *Disasm) Process(ctx context.Context, rom []byte, w io.Writer) (*program.Program, error) {
	app, err := dis.Convert(ctx, rom)
	if err != nil {
		return nil, err
	}

	if err := writer.New(app, w).Write(); err != nil {
		return nil, fmt.Errorf("writing app to file: %w", err)
	}
	return app, nil
}

// Convert disassembles the ROM into a program without writing it.
func (dis *Disasm) Convert(ctx context.Context, rom []byte) (*program.Program, error) {
	dis.jumpDestinations = set.New[uint16]()
	dis.callDestinations = set.New[uint16]()
	dis.dataReferences = set.New[uint16]()

	app := program.New(len(rom), chip8.ProgramStart)

	for i := 0; i < len(rom); i += chip8.OpcodeSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("disassembling: %w", err)
		}

		address := chip8.ProgramStart + uint16(i)
		if i+1 == len(rom) {
			app.Offsets = append(app.Offsets, program.Offset{
				Address: address,
				Data:    rom[i : i+1],
				Type:    program.DataOffset,
				Comment: fmt.Sprintf("0x%02X trailing byte", rom[i]),
			})
			dis.logger.Debug("Trailing byte", log.Hex("address", address))
			continue
		}

		app.Offsets = append(app.Offsets, dis.decodeOffset(address, rom[i:i+chip8.OpcodeSize]))
	}

	dis.markDestinations(app)

	for i := range app.Offsets {
		if err := dis.setComment(&app.Offsets[i]); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// decodeOffset decodes one opcode. Words that do not decode become data offsets so that
// the remaining ROM is still processed.
func (dis *Disasm) decodeOffset(address uint16, data []byte) program.Offset {
	offset := program.Offset{
		Address: address,
		Data:    data,
	}

	ins, err := chip8.Decode(data[0], data[1])
	if err != nil {
		dis.logger.Debug("Undecodable opcode",
			log.Hex("address", address),
			log.Err(err))
		offset.Type = program.DataOffset
		offset.Comment = fmt.Sprintf("0x%02X%02X unknown opcode", data[0], data[1])
		return offset
	}

	offset.Type = program.CodeOffset
	offset.Code = chip8.Format(ins)

	target, ok := ins.ReferencesAddress()
	if !ok {
		return offset
	}
	switch {
	case ins.IsJump():
		dis.jumpDestinations.Add(target)
	case ins.IsCall():
		dis.callDestinations.Add(target)
	default:
		dis.dataReferences.Add(target)
	}
	return offset
}

// markDestinations flags all offsets that are referenced by an instruction of the program.
// Targets outside of the ROM or inside of an opcode are ignored.
func (dis *Disasm) markDestinations(app *program.Program) {
	mark := func(targets set.Set[uint16], typ program.OffsetType) {
		addresses := make([]uint16, 0, len(targets))
		for address := range targets {
			addresses = append(addresses, address)
		}
		slices.Sort(addresses)

		for _, address := range addresses {
			if address < app.CodeBaseAddress || (address-app.CodeBaseAddress)%chip8.OpcodeSize != 0 {
				continue
			}
			index := int(address-app.CodeBaseAddress) / chip8.OpcodeSize
			if index >= len(app.Offsets) {
				continue
			}
			app.Offsets[index].SetType(typ)
		}
	}

	mark(dis.jumpDestinations, program.JumpDestination)
	mark(dis.callDestinations, program.CallDestination)
	mark(dis.dataReferences, program.DataReference)
}

// setComment sets the comment of a code offset to address, opcode bytes and reference
// markers, depending on the options.
func (dis *Disasm) setComment(offset *program.Offset) error {
	var comments []string

	if dis.options.OffsetComments {
		comments = append(comments, fmt.Sprintf("$%04X", offset.Address))
	}

	if !offset.IsType(program.CodeOffset) {
		if len(comments) > 0 {
			offset.Comment = offset.Comment + "  " + strings.Join(comments, "  ")
		}
		return nil
	}

	if dis.options.HexComments {
		hexCode, err := offset.HexCodeComment()
		if err != nil {
			return fmt.Errorf("creating hex comment: %w", err)
		}
		comments = append(comments, hexCode)
	}

	switch {
	case offset.IsType(program.CallDestination):
		comments = append(comments, "call target")
	case offset.IsType(program.JumpDestination):
		comments = append(comments, "jump target")
	}
	if offset.IsType(program.DataReference) {
		comments = append(comments, "data reference")
	}

	offset.Comment = strings.Join(comments, "  ")
	return nil
}
