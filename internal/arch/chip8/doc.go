// Package chip8 provides the CHIP-8 instruction model shared by the interpreter,
// the disassembler and the assembler.
//
// # CHIP-8 Architecture Overview
//
// CHIP-8 is an interpreted programming language developed in the 1970s for simple games
// on early microcomputers. Every instruction is 2 bytes wide and stored big-endian.
//
// # Memory Layout
//
// CHIP-8 systems have 4KB of memory (0x000-MaxAddress):
//   - 0x000-0x1FF: Interpreter area, holds the font sprites
//   - ProgramStart-MaxAddress: User program and data area
//
// # Instruction Set
//
// The package models the 35 base opcodes as Op values. Opcode families that share a
// mnemonic but differ in operand shape (LD, ADD, SE, SNE, JP) get one Op per shape:
//   - All instructions are 2 bytes (16 bits)
//   - Operands are 4-bit registers (X, Y), a 4-bit nibble (N), an 8-bit byte (KK)
//     or a 12-bit address (NNN)
//   - 16 general-purpose 8-bit registers (V0-V15)
//
// # Operations
//
// The opcode table in this package is the single source of truth for:
//   - Decode: 2 bytes to Instruction, failing with ErrUnknownOpcode
//   - Encode: Instruction to 2 bytes, the exact inverse of Decode
//   - Format: Instruction to a mnemonic text line
//   - Operands: the operand syntax of each Op, used by the assembler to parse
//     mnemonic text back into instructions
//
// # Usage Example
//
//	ins, err := chip8.Decode(0x8A, 0xB4)
//	if err != nil {
//		return fmt.Errorf("decoding opcode: %w", err)
//	}
//	fmt.Println(ins) // ADD V10, V11
//
// # Mnemonic Conventions
//
// Registers are written as V followed by the decimal register index (V15, not VF).
// Addresses, bytes and nibbles are written in decimal.
package chip8
