package emulator

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
)

// handler executes one decoded instruction. The program counter already points
// at the next instruction when it is called.
type handler func(m *Machine, ins chip8.Instruction) error

// handlers is indexed by the instruction Op.
var handlers = map[chip8.Op]handler{
	chip8.Sys:     func(*Machine, chip8.Instruction) error { return nil },
	chip8.Cls:     execCls,
	chip8.Ret:     execRet,
	chip8.Jp:      execJp,
	chip8.Call:    execCall,
	chip8.SeByte:  execSeByte,
	chip8.SneByte: execSneByte,
	chip8.SeReg:   execSeReg,
	chip8.LdByte:  execLdByte,
	chip8.AddByte: execAddByte,
	chip8.LdReg:   execLdReg,
	chip8.Or:      execOr,
	chip8.And:     execAnd,
	chip8.Xor:     execXor,
	chip8.AddReg:  execAddReg,
	chip8.Sub:     execSub,
	chip8.Shr:     execShr,
	chip8.Subn:    execSubn,
	chip8.Shl:     execShl,
	chip8.SneReg:  execSneReg,
	chip8.LdI:     execLdI,
	chip8.JpV0:    execJpV0,
	chip8.Rnd:     execRnd,
	chip8.Drw:     execDrw,
	chip8.Skp:     execSkp,
	chip8.Sknp:    execSknp,
	chip8.LdVxDT:  execLdVxDT,
	chip8.LdVxK:   execLdVxK,
	chip8.LdDTVx:  execLdDTVx,
	chip8.LdSTVx:  execLdSTVx,
	chip8.AddI:    execAddI,
	chip8.LdF:     execLdF,
	chip8.LdB:     execLdB,
	chip8.LdIVx:   execLdIVx,
	chip8.LdVxI:   execLdVxI,
}

// Step executes one cycle. While waiting for a key the cycle only checks the
// keypad. Errors halt the machine; once halted, Step returns an error wrapping
// ErrHalted and the error that caused the halt.
func (m *Machine) Step() error {
	switch m.state {
	case Halted:
		return fmt.Errorf("%w: %w", ErrHalted, m.err)

	case WaitingForKey:
		m.cycles++
		for key, down := range m.keys {
			if down {
				m.registers[m.keyRegister] = uint8(key)
				m.state = Running
				break
			}
		}
		return nil
	}

	m.cycles++

	if m.pc > chip8.MaxAddress-1 {
		return m.halt(fmt.Errorf("%w: fetching opcode at 0x%04X", ErrMemoryOutOfBounds, m.pc))
	}

	address := m.pc
	ins, err := chip8.Decode(m.memory[address], m.memory[address+1])
	if err != nil {
		return m.halt(fmt.Errorf("decoding opcode at 0x%04X: %w", address, err))
	}

	m.pc += chip8.OpcodeSize

	if err := handlers[ins.Op()](m, ins); err != nil {
		return m.halt(fmt.Errorf("executing '%s' at 0x%04X: %w", ins, address, err))
	}
	return nil
}

// checkMemoryRange returns an error if I points past the address space or the
// count bytes starting at I do not all lie inside it.
func (m *Machine) checkMemoryRange(count int) error {
	if int(m.index) > chip8.MaxAddress || int(m.index)+count-1 > chip8.MaxAddress {
		return fmt.Errorf("%w: accessing %d bytes at 0x%04X", ErrMemoryOutOfBounds, count, m.index)
	}
	return nil
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += chip8.OpcodeSize
	}
}

// setFlag writes VF. It is called after the result register was written so
// that the flag wins when VF is the target register.
func (m *Machine) setFlag(set bool) {
	if set {
		m.registers[chip8.FlagRegister] = 1
	} else {
		m.registers[chip8.FlagRegister] = 0
	}
}

func execCls(m *Machine, _ chip8.Instruction) error {
	m.display.clear()
	return nil
}

func execRet(m *Machine, _ chip8.Instruction) error {
	address, err := m.stack.pop()
	if err != nil {
		return err
	}
	m.pc = address
	return nil
}

func execJp(m *Machine, ins chip8.Instruction) error {
	m.pc = ins.NNN()
	return nil
}

func execCall(m *Machine, ins chip8.Instruction) error {
	if err := m.stack.push(m.pc); err != nil {
		return err
	}
	m.pc = ins.NNN()
	return nil
}

func execSeByte(m *Machine, ins chip8.Instruction) error {
	m.skipIf(m.registers[ins.X()] == ins.KK())
	return nil
}

func execSneByte(m *Machine, ins chip8.Instruction) error {
	m.skipIf(m.registers[ins.X()] != ins.KK())
	return nil
}

func execSeReg(m *Machine, ins chip8.Instruction) error {
	m.skipIf(m.registers[ins.X()] == m.registers[ins.Y()])
	return nil
}

func execSneReg(m *Machine, ins chip8.Instruction) error {
	m.skipIf(m.registers[ins.X()] != m.registers[ins.Y()])
	return nil
}

func execLdByte(m *Machine, ins chip8.Instruction) error {
	m.registers[ins.X()] = ins.KK()
	return nil
}

func execAddByte(m *Machine, ins chip8.Instruction) error {
	m.registers[ins.X()] += ins.KK()
	return nil
}

func execLdReg(m *Machine, ins chip8.Instruction) error {
	m.registers[ins.X()] = m.registers[ins.Y()]
	return nil
}

func execOr(m *Machine, ins chip8.Instruction) error {
	m.registers[ins.X()] |= m.registers[ins.Y()]
	return nil
}

func execAnd(m *Machine, ins chip8.Instruction) error {
	m.registers[ins.X()] &= m.registers[ins.Y()]
	return nil
}

func execXor(m *Machine, ins chip8.Instruction) error {
	m.registers[ins.X()] ^= m.registers[ins.Y()]
	return nil
}

func execAddReg(m *Machine, ins chip8.Instruction) error {
	sum := uint16(m.registers[ins.X()]) + uint16(m.registers[ins.Y()])
	m.registers[ins.X()] = uint8(sum)
	m.setFlag(sum > 0xFF)
	return nil
}

func execSub(m *Machine, ins chip8.Instruction) error {
	vx, vy := m.registers[ins.X()], m.registers[ins.Y()]
	m.registers[ins.X()] = vx - vy
	m.setFlag(vx >= vy)
	return nil
}

func execSubn(m *Machine, ins chip8.Instruction) error {
	vx, vy := m.registers[ins.X()], m.registers[ins.Y()]
	m.registers[ins.X()] = vy - vx
	m.setFlag(vy >= vx)
	return nil
}

func (m *Machine) shiftSource(ins chip8.Instruction) uint8 {
	if m.quirks.ShiftUsesVY {
		return m.registers[ins.Y()]
	}
	return m.registers[ins.X()]
}

func execShr(m *Machine, ins chip8.Instruction) error {
	value := m.shiftSource(ins)
	m.registers[ins.X()] = value >> 1
	m.setFlag(value&0x01 != 0)
	return nil
}

func execShl(m *Machine, ins chip8.Instruction) error {
	value := m.shiftSource(ins)
	m.registers[ins.X()] = value << 1
	m.setFlag(value&0x80 != 0)
	return nil
}

func execLdI(m *Machine, ins chip8.Instruction) error {
	m.index = ins.NNN()
	return nil
}

func execJpV0(m *Machine, ins chip8.Instruction) error {
	m.pc = ins.NNN() + uint16(m.registers[0])
	return nil
}

func execRnd(m *Machine, ins chip8.Instruction) error {
	m.registers[ins.X()] = m.random.Uint8() & ins.KK()
	return nil
}

func execDrw(m *Machine, ins chip8.Instruction) error {
	rows := int(ins.N())
	if err := m.checkMemoryRange(rows); err != nil {
		return err
	}

	sprite := m.memory[m.index : int(m.index)+rows]
	collision := m.display.drawSprite(m.registers[ins.X()], m.registers[ins.Y()], sprite)
	m.setFlag(collision)
	return nil
}

func execSkp(m *Machine, ins chip8.Instruction) error {
	m.skipIf(m.keys[m.registers[ins.X()]&0x0F])
	return nil
}

func execSknp(m *Machine, ins chip8.Instruction) error {
	m.skipIf(!m.keys[m.registers[ins.X()]&0x0F])
	return nil
}

func execLdVxDT(m *Machine, ins chip8.Instruction) error {
	m.registers[ins.X()] = m.delay
	return nil
}

func execLdVxK(m *Machine, ins chip8.Instruction) error {
	m.keyRegister = ins.X()
	m.state = WaitingForKey
	return nil
}

func execLdDTVx(m *Machine, ins chip8.Instruction) error {
	m.delay = m.registers[ins.X()]
	return nil
}

func execLdSTVx(m *Machine, ins chip8.Instruction) error {
	m.sound = m.registers[ins.X()]
	return nil
}

func execAddI(m *Machine, ins chip8.Instruction) error {
	m.index += uint16(m.registers[ins.X()])
	return nil
}

func execLdF(m *Machine, ins chip8.Instruction) error {
	digit := uint16(m.registers[ins.X()] & 0x0F)
	m.index = FontAddress + digit*FontCharSize
	return nil
}

func execLdB(m *Machine, ins chip8.Instruction) error {
	if err := m.checkMemoryRange(3); err != nil {
		return err
	}

	value := m.registers[ins.X()]
	m.memory[m.index] = value / 100
	m.memory[m.index+1] = value / 10 % 10
	m.memory[m.index+2] = value % 10
	return nil
}

func execLdIVx(m *Machine, ins chip8.Instruction) error {
	count := int(ins.X()) + 1
	if err := m.checkMemoryRange(count); err != nil {
		return err
	}

	copy(m.memory[m.index:], m.registers[:count])
	if m.quirks.LoadStoreIncrementsI {
		m.index += uint16(count)
	}
	return nil
}

func execLdVxI(m *Machine, ins chip8.Instruction) error {
	count := int(ins.X()) + 1
	if err := m.checkMemoryRange(count); err != nil {
		return err
	}

	copy(m.registers[:count], m.memory[m.index:])
	if m.quirks.LoadStoreIncrementsI {
		m.index += uint16(count)
	}
	return nil
}
