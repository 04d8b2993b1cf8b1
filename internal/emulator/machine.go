// Package emulator implements the CHIP-8 virtual machine: memory, registers,
// timers, display and the instruction interpreter.
package emulator

import (
	"fmt"
	"strings"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
)

// KeyCount is the number of keys of the hexadecimal keypad.
const KeyCount = 16

// Machine is the complete state of one CHIP-8 virtual machine. Machines are
// independent of each other and are not safe for concurrent use.
type Machine struct {
	memory    [chip8.MemorySize]byte
	registers [chip8.RegisterCount]uint8
	index     uint16
	pc        uint16
	stack     stack
	delay     uint8
	sound     uint8
	display   Display
	keys      [KeyCount]bool

	state       State
	keyRegister uint8 // target register of LD Vx, K
	err         error // error that halted the machine
	cycles      uint64

	quirks Quirks
	random RandomSource
}

// New returns a machine in its reset state with the font loaded.
func New(cfg Config) *Machine {
	m := &Machine{
		quirks: cfg.Quirks,
		random: cfg.Random,
	}
	if m.random == nil {
		m.random = mathRandom{}
	}
	m.Reset()
	return m
}

// Reset clears memory, registers, timers, display and keys and reloads the font.
// The configuration is kept.
func (m *Machine) Reset() {
	m.memory = [chip8.MemorySize]byte{}
	copy(m.memory[FontAddress:], fontSet[:])

	m.registers = [chip8.RegisterCount]uint8{}
	m.index = 0
	m.pc = chip8.ProgramStart
	m.stack = stack{}
	m.delay = 0
	m.sound = 0
	m.display = Display{dirty: true}
	m.keys = [KeyCount]bool{}

	m.state = Running
	m.keyRegister = 0
	m.err = nil
	m.cycles = 0
}

// LoadROM copies the program into memory at the program start address.
func (m *Machine) LoadROM(rom []byte) error {
	if len(rom) > chip8.MaxProgramSize {
		return fmt.Errorf("%w: %d bytes exceed %d", ErrRomTooLarge, len(rom), chip8.MaxProgramSize)
	}
	copy(m.memory[chip8.ProgramStart:], rom)
	return nil
}

// SetKey sets the pressed state of a keypad key. Keys outside of 0-F are ignored.
func (m *Machine) SetKey(key uint8, down bool) {
	if int(key) >= KeyCount {
		return
	}
	m.keys[key] = down
}

// Tick decrements the delay and sound timers once, stopping at zero.
// It is called at 60 Hz independent of the instruction rate.
func (m *Machine) Tick() {
	if m.delay > 0 {
		m.delay--
	}
	if m.sound > 0 {
		m.sound--
	}
}

// Display returns the display of the machine.
func (m *Machine) Display() *Display {
	return &m.display
}

// DelayTimer returns the current value of the delay timer.
func (m *Machine) DelayTimer() uint8 {
	return m.delay
}

// SoundTimer returns the current value of the sound timer. A tone is played while
// it is not zero.
func (m *Machine) SoundTimer() uint8 {
	return m.sound
}

// State returns the execution state.
func (m *Machine) State() State {
	return m.state
}

// Err returns the error that halted the machine.
func (m *Machine) Err() error {
	return m.err
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// I returns the index register.
func (m *Machine) I() uint16 {
	return m.index
}

// V returns the value of register Vx.
func (m *Machine) V(x uint8) uint8 {
	return m.registers[x&0x0F]
}

// Cycles returns the number of executed cycles since the last reset.
func (m *Machine) Cycles() uint64 {
	return m.cycles
}

// Memory returns the byte at the given address. Addresses past the last byte
// return 0.
func (m *Machine) Memory(address uint16) byte {
	if address > chip8.MaxAddress {
		return 0
	}
	return m.memory[address]
}

// Snapshot is a copy of the register state of a machine.
type Snapshot struct {
	PC        uint16
	I         uint16
	Registers [chip8.RegisterCount]uint8
	Stack     []uint16
	Delay     uint8
	Sound     uint8
	State     State
	Cycles    uint64
}

// Snapshot returns a copy of the register state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		PC:        m.pc,
		I:         m.index,
		Registers: m.registers,
		Stack:     append([]uint16(nil), m.stack.entries[:m.stack.size]...),
		Delay:     m.delay,
		Sound:     m.sound,
		State:     m.state,
		Cycles:    m.cycles,
	}
}

// String returns the snapshot in a compact single line form.
func (s Snapshot) String() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "PC=$%04X I=$%04X", s.PC, s.I)
	for i, value := range s.Registers {
		fmt.Fprintf(&buf, " %s=$%02X", chip8.RegisterName(uint8(i)), value)
	}
	fmt.Fprintf(&buf, " DT=%d ST=%d SP=%d", s.Delay, s.Sound, len(s.Stack))
	return buf.String()
}

// halt stops the machine and records the error.
func (m *Machine) halt(err error) error {
	m.state = Halted
	m.err = err
	return err
}
