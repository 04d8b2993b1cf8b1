package chip8

// familyDecoder resolves the Op of an opcode whose high nibble selected the family.
type familyDecoder func(opcode uint16) (Op, bool)

// families is indexed by the high nibble of the opcode.
var families = [16]familyDecoder{
	0x0: decodeSystem,
	0x1: single(Jp),
	0x2: single(Call),
	0x3: single(SeByte),
	0x4: single(SneByte),
	0x5: byLowNibble(map[uint16]Op{0x0: SeReg}),
	0x6: single(LdByte),
	0x7: single(AddByte),
	0x8: byLowNibble(map[uint16]Op{
		0x0: LdReg,
		0x1: Or,
		0x2: And,
		0x3: Xor,
		0x4: AddReg,
		0x5: Sub,
		0x6: Shr,
		0x7: Subn,
		0xE: Shl,
	}),
	0x9: byLowNibble(map[uint16]Op{0x0: SneReg}),
	0xA: single(LdI),
	0xB: single(JpV0),
	0xC: single(Rnd),
	0xD: single(Drw),
	0xE: byLowByte(map[uint16]Op{
		0x9E: Skp,
		0xA1: Sknp,
	}),
	0xF: byLowByte(map[uint16]Op{
		0x07: LdVxDT,
		0x0A: LdVxK,
		0x15: LdDTVx,
		0x18: LdSTVx,
		0x1E: AddI,
		0x29: LdF,
		0x33: LdB,
		0x55: LdIVx,
		0x65: LdVxI,
	}),
}

func single(op Op) familyDecoder {
	return func(uint16) (Op, bool) {
		return op, true
	}
}

func byLowNibble(table map[uint16]Op) familyDecoder {
	return func(opcode uint16) (Op, bool) {
		op, ok := table[opcode&0x000F]
		return op, ok
	}
}

func byLowByte(table map[uint16]Op) familyDecoder {
	return func(opcode uint16) (Op, bool) {
		op, ok := table[opcode&0x00FF]
		return op, ok
	}
}

// decodeSystem handles the 0NNN family, 00E0 and 00EE are CLS and RET and
// everything else is a machine code routine call.
func decodeSystem(opcode uint16) (Op, bool) {
	switch opcode {
	case 0x00E0:
		return Cls, true
	case 0x00EE:
		return Ret, true
	default:
		return Sys, true
	}
}

// Decode decodes a big-endian 2 byte opcode.
func Decode(hi, lo byte) (Instruction, error) {
	return DecodeWord(uint16(hi)<<8 | uint16(lo))
}

// DecodeWord decodes a 16-bit opcode.
func DecodeWord(opcode uint16) (Instruction, error) {
	family := families[opcode>>12]
	op, ok := family(opcode)
	if !ok {
		return Instruction{}, &UnknownOpcodeError{Opcode: opcode}
	}

	ins := Instruction{op: op}
	switch op.Shape() {
	case ShapeNone:

	case ShapeNNN:
		ins.nnn = opcode & 0x0FFF

	case ShapeX:
		ins.x = extractRegisterX(opcode)

	case ShapeXKK:
		ins.x = extractRegisterX(opcode)
		ins.kk = uint8(opcode & 0x00FF)

	case ShapeXY:
		ins.x = extractRegisterX(opcode)
		ins.y = extractRegisterY(opcode)

	case ShapeXYN:
		ins.x = extractRegisterX(opcode)
		ins.y = extractRegisterY(opcode)
		ins.n = uint8(opcode & 0x000F)
	}
	return ins, nil
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(opcode uint16) uint8 {
	return uint8((opcode & 0x0F00) >> 8)
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(opcode uint16) uint8 {
	return uint8((opcode & 0x00F0) >> 4)
}
