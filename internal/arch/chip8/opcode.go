package chip8

import (
	"strings"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// CHIP-8 memory layout constants.
const (
	// ProgramStart is the memory address where CHIP-8 programs are loaded and
	// begin execution.
	ProgramStart = 0x200

	// MaxAddress is the highest valid address in CHIP-8 memory space (4KB total).
	MaxAddress = 0xFFF

	// MemorySize is the size of the CHIP-8 address space in bytes.
	MemorySize = MaxAddress + 1

	// MaxProgramSize is the largest program that fits between ProgramStart and MaxAddress.
	MaxProgramSize = MemorySize - ProgramStart

	// RegisterCount is the number of general-purpose V registers.
	RegisterCount = 16

	// FlagRegister is the index of VF, the carry, borrow and collision flag.
	FlagRegister = 0xF
)

// OpcodeSize is the size of CHIP-8 instructions in bytes.
const OpcodeSize = 2

// Op identifies one decodable instruction variant.
type Op uint8

// Instruction variants. The zero value is not a valid Op.
const (
	Sys     Op = iota + 1 // 0NNN
	Cls                   // 00E0
	Ret                   // 00EE
	Jp                    // 1NNN
	Call                  // 2NNN
	SeByte                // 3XKK
	SneByte               // 4XKK
	SeReg                 // 5XY0
	LdByte                // 6XKK
	AddByte               // 7XKK
	LdReg                 // 8XY0
	Or                    // 8XY1
	And                   // 8XY2
	Xor                   // 8XY3
	AddReg                // 8XY4
	Sub                   // 8XY5
	Shr                   // 8XY6
	Subn                  // 8XY7
	Shl                   // 8XYE
	SneReg                // 9XY0
	LdI                   // ANNN
	JpV0                  // BNNN
	Rnd                   // CXKK
	Drw                   // DXYN
	Skp                   // EX9E
	Sknp                  // EXA1
	LdVxDT                // FX07
	LdVxK                 // FX0A
	LdDTVx                // FX15
	LdSTVx                // FX18
	AddI                  // FX1E
	LdF                   // FX29
	LdB                   // FX33
	LdIVx                 // FX55
	LdVxI                 // FX65

	opCount
)

// Shape describes which operand fields of an opcode are variable.
type Shape uint8

// Operand shapes.
const (
	ShapeNone Shape = iota // no operands
	ShapeNNN               // 12-bit address
	ShapeX                 // register X
	ShapeXKK               // register X and 8-bit byte
	ShapeXY                // registers X and Y
	ShapeXYN               // registers X and Y and 4-bit nibble
)

// operandCount returns the number of numeric operands a shape carries.
func (s Shape) operandCount() int {
	switch s {
	case ShapeNNN, ShapeX:
		return 1
	case ShapeXKK, ShapeXY:
		return 2
	case ShapeXYN:
		return 3
	default:
		return 0
	}
}

// OperandKind identifies one slot of the mnemonic operand syntax.
type OperandKind uint8

// Operand kinds of the mnemonic syntax.
const (
	OperandX       OperandKind = iota + 1 // register encoded in the X nibble
	OperandY                              // register encoded in the Y nibble
	OperandN                              // 4-bit immediate
	OperandKK                             // 8-bit immediate
	OperandNNN                            // 12-bit address
	OperandKeyword                        // fixed token such as I, DT or [I]
)

// Operand is one slot of the mnemonic operand syntax of an Op.
type Operand struct {
	Kind    OperandKind
	Keyword string // canonical token for OperandKeyword
}

// opcodeInfo describes the encoding and syntax of one Op.
type opcodeInfo struct {
	name     string // upper-case mnemonic
	pattern  uint16 // fixed bits of the opcode
	shape    Shape
	operands []Operand
}

var (
	regX  = Operand{Kind: OperandX}
	regY  = Operand{Kind: OperandY}
	nib   = Operand{Kind: OperandN}
	byt   = Operand{Kind: OperandKK}
	addr  = Operand{Kind: OperandNNN}
	kwI   = Operand{Kind: OperandKeyword, Keyword: "I"}
	kwMem = Operand{Kind: OperandKeyword, Keyword: "[I]"}
	kwDT  = Operand{Kind: OperandKeyword, Keyword: "DT"}
	kwST  = Operand{Kind: OperandKeyword, Keyword: "ST"}
	kwK   = Operand{Kind: OperandKeyword, Keyword: "K"}
	kwF   = Operand{Kind: OperandKeyword, Keyword: "F"}
	kwB   = Operand{Kind: OperandKeyword, Keyword: "B"}
	kwV0  = Operand{Kind: OperandKeyword, Keyword: "V0"}
)

// opcodes is indexed by Op. Mnemonic names come from the retrogolib CHIP-8
// instruction definitions, SYS is not part of them.
var opcodes = [opCount]opcodeInfo{
	Sys:     {name: "SYS", pattern: 0x0000, shape: ShapeNNN, operands: []Operand{addr}},
	Cls:     {name: mnemonic(chip8cpu.ClsInst), pattern: 0x00E0, shape: ShapeNone},
	Ret:     {name: mnemonic(chip8cpu.RetInst), pattern: 0x00EE, shape: ShapeNone},
	Jp:      {name: mnemonic(chip8cpu.JpInst), pattern: 0x1000, shape: ShapeNNN, operands: []Operand{addr}},
	Call:    {name: mnemonic(chip8cpu.CallInst), pattern: 0x2000, shape: ShapeNNN, operands: []Operand{addr}},
	SeByte:  {name: mnemonic(chip8cpu.SeInst), pattern: 0x3000, shape: ShapeXKK, operands: []Operand{regX, byt}},
	SneByte: {name: mnemonic(chip8cpu.SneInst), pattern: 0x4000, shape: ShapeXKK, operands: []Operand{regX, byt}},
	SeReg:   {name: mnemonic(chip8cpu.SeInst), pattern: 0x5000, shape: ShapeXY, operands: []Operand{regX, regY}},
	LdByte:  {name: mnemonic(chip8cpu.LdInst), pattern: 0x6000, shape: ShapeXKK, operands: []Operand{regX, byt}},
	AddByte: {name: mnemonic(chip8cpu.AddInst), pattern: 0x7000, shape: ShapeXKK, operands: []Operand{regX, byt}},
	LdReg:   {name: mnemonic(chip8cpu.LdInst), pattern: 0x8000, shape: ShapeXY, operands: []Operand{regX, regY}},
	Or:      {name: mnemonic(chip8cpu.OrInst), pattern: 0x8001, shape: ShapeXY, operands: []Operand{regX, regY}},
	And:     {name: mnemonic(chip8cpu.AndInst), pattern: 0x8002, shape: ShapeXY, operands: []Operand{regX, regY}},
	Xor:     {name: mnemonic(chip8cpu.XorInst), pattern: 0x8003, shape: ShapeXY, operands: []Operand{regX, regY}},
	AddReg:  {name: mnemonic(chip8cpu.AddInst), pattern: 0x8004, shape: ShapeXY, operands: []Operand{regX, regY}},
	Sub:     {name: mnemonic(chip8cpu.SubInst), pattern: 0x8005, shape: ShapeXY, operands: []Operand{regX, regY}},
	Shr:     {name: mnemonic(chip8cpu.ShrInst), pattern: 0x8006, shape: ShapeXY, operands: []Operand{regX, regY}},
	Subn:    {name: mnemonic(chip8cpu.SubnInst), pattern: 0x8007, shape: ShapeXY, operands: []Operand{regX, regY}},
	Shl:     {name: mnemonic(chip8cpu.ShlInst), pattern: 0x800E, shape: ShapeXY, operands: []Operand{regX, regY}},
	SneReg:  {name: mnemonic(chip8cpu.SneInst), pattern: 0x9000, shape: ShapeXY, operands: []Operand{regX, regY}},
	LdI:     {name: mnemonic(chip8cpu.LdInst), pattern: 0xA000, shape: ShapeNNN, operands: []Operand{kwI, addr}},
	JpV0:    {name: mnemonic(chip8cpu.JpInst), pattern: 0xB000, shape: ShapeNNN, operands: []Operand{kwV0, addr}},
	Rnd:     {name: mnemonic(chip8cpu.RndInst), pattern: 0xC000, shape: ShapeXKK, operands: []Operand{regX, byt}},
	Drw:     {name: mnemonic(chip8cpu.DrwInst), pattern: 0xD000, shape: ShapeXYN, operands: []Operand{regX, regY, nib}},
	Skp:     {name: mnemonic(chip8cpu.SkpInst), pattern: 0xE09E, shape: ShapeX, operands: []Operand{regX}},
	Sknp:    {name: mnemonic(chip8cpu.SknpInst), pattern: 0xE0A1, shape: ShapeX, operands: []Operand{regX}},
	LdVxDT:  {name: mnemonic(chip8cpu.LdInst), pattern: 0xF007, shape: ShapeX, operands: []Operand{regX, kwDT}},
	LdVxK:   {name: mnemonic(chip8cpu.LdInst), pattern: 0xF00A, shape: ShapeX, operands: []Operand{regX, kwK}},
	LdDTVx:  {name: mnemonic(chip8cpu.LdInst), pattern: 0xF015, shape: ShapeX, operands: []Operand{kwDT, regX}},
	LdSTVx:  {name: mnemonic(chip8cpu.LdInst), pattern: 0xF018, shape: ShapeX, operands: []Operand{kwST, regX}},
	AddI:    {name: mnemonic(chip8cpu.AddInst), pattern: 0xF01E, shape: ShapeX, operands: []Operand{kwI, regX}},
	LdF:     {name: mnemonic(chip8cpu.LdInst), pattern: 0xF029, shape: ShapeX, operands: []Operand{kwF, regX}},
	LdB:     {name: mnemonic(chip8cpu.LdInst), pattern: 0xF033, shape: ShapeX, operands: []Operand{kwB, regX}},
	LdIVx:   {name: mnemonic(chip8cpu.LdInst), pattern: 0xF055, shape: ShapeX, operands: []Operand{kwMem, regX}},
	LdVxI:   {name: mnemonic(chip8cpu.LdInst), pattern: 0xF065, shape: ShapeX, operands: []Operand{regX, kwMem}},
}

// byMnemonic maps an upper-case mnemonic to all Ops that share it.
var byMnemonic = buildMnemonicIndex()

func mnemonic(ins *chip8cpu.Instruction) string {
	return strings.ToUpper(ins.Name)
}

func buildMnemonicIndex() map[string][]Op {
	index := make(map[string][]Op)
	for op := Sys; op < opCount; op++ {
		name := opcodes[op].name
		index[name] = append(index[name], op)
	}
	return index
}

// Ops returns all valid Ops in opcode order.
func Ops() []Op {
	ops := make([]Op, 0, opCount-1)
	for op := Sys; op < opCount; op++ {
		ops = append(ops, op)
	}
	return ops
}

// LookupMnemonic returns the Ops sharing the given mnemonic, matched case-insensitively.
func LookupMnemonic(name string) []Op {
	return byMnemonic[strings.ToUpper(name)]
}

// Valid returns whether the Op is a known instruction variant.
func (op Op) Valid() bool {
	return op >= Sys && op < opCount
}

// Name returns the upper-case mnemonic of the Op.
func (op Op) Name() string {
	if !op.Valid() {
		return ""
	}
	return opcodes[op].name
}

// String implements fmt.Stringer.
func (op Op) String() string {
	if !op.Valid() {
		return "invalid"
	}
	return opcodes[op].name
}

// Shape returns the operand shape of the Op.
func (op Op) Shape() Shape {
	if !op.Valid() {
		return ShapeNone
	}
	return opcodes[op].shape
}

// Pattern returns the fixed opcode bits of the Op with all operand fields zeroed.
func (op Op) Pattern() uint16 {
	if !op.Valid() {
		return 0
	}
	return opcodes[op].pattern
}

// Operands returns the mnemonic operand syntax of the Op.
func (op Op) Operands() []Operand {
	if !op.Valid() {
		return nil
	}
	return opcodes[op].operands
}
