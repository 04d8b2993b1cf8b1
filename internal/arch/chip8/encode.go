package chip8

// Encode returns the 16-bit opcode of the instruction. It is the inverse of
// DecodeWord. The zero Instruction encodes as 0x0000.
func Encode(ins Instruction) uint16 {
	if ins.IsNil() {
		return 0
	}

	opcode := ins.op.Pattern()
	switch ins.op.Shape() {
	case ShapeNone:

	case ShapeNNN:
		opcode |= ins.nnn & 0x0FFF

	case ShapeX:
		opcode |= uint16(ins.x) << 8

	case ShapeXKK:
		opcode |= uint16(ins.x)<<8 | uint16(ins.kk)

	case ShapeXY:
		opcode |= uint16(ins.x)<<8 | uint16(ins.y)<<4

	case ShapeXYN:
		opcode |= uint16(ins.x)<<8 | uint16(ins.y)<<4 | uint16(ins.n)
	}
	return opcode
}

// EncodeBytes returns the opcode of the instruction as big-endian bytes.
func EncodeBytes(ins Instruction) [OpcodeSize]byte {
	opcode := Encode(ins)
	return [OpcodeSize]byte{byte(opcode >> 8), byte(opcode)}
}
