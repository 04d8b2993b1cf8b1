// Package options contains the program options.
package options

// Mode is the operation performed on an input file.
type Mode string

// Operation modes.
const (
	Emulate     Mode = "emulate"
	Disassemble Mode = "disassemble"
	Assemble    Mode = "assemble"
)

// Default values of the emulator options.
const (
	DefaultCyclesPerSecond = 700
	DefaultScale           = 10
	DefaultForeground      = "white"
	DefaultBackground      = "black"
)

// Parameters contains file path options.
type Parameters struct {
	Input  string `usage:"input ROM or source file"`
	Output string `flag:"o" usage:"output file (default: derived from the input name)"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.ch8)"`
}

// Flags contains behavior options.
type Flags struct {
	Disassemble  bool `flag:"d" usage:"disassemble the ROM to a .chasm file"`
	Assemble     bool `flag:"a" usage:"assemble the .chasm file to a ROM"`
	AssembleTest bool `flag:"verify" usage:"verify the disassembly by reassembling and comparing to input"`
	Debug        bool `flag:"debug" usage:"enable debug logging"`
	Quiet        bool `flag:"q" usage:"quiet mode"`
	Version      bool `flag:"version" usage:"print version and exit"`
}

// OutputFlags contains disassembly output formatting options.
type OutputFlags struct {
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex opcode bytes in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit addresses in comments"`
}

// EmulatorFlags contains the emulation options.
type EmulatorFlags struct {
	Headless             bool   `flag:"headless" usage:"run without a window"`
	Cycles               uint64 `flag:"cycles" usage:"stop after the given number of cycles"`
	CyclesPerSecond      int    `flag:"hz" usage:"instructions executed per second"`
	Scale                int    `flag:"scale" usage:"window scale factor"`
	ShiftUsesVY          bool   `flag:"shift-vy" usage:"SHR and SHL shift VY into VX"`
	LoadStoreIncrementsI bool   `flag:"loadstore-inc-i" usage:"LD [I] instructions increment I"`
	Foreground           string `flag:"fg" usage:"foreground color name"`
	Background           string `flag:"bg" usage:"background color name"`
}

// Program options of the tool.
type Program struct {
	Parameters
	Flags
	OutputFlags
	EmulatorFlags
}

// Disassembler defines options to control the disassembler output.
type Disassembler struct {
	HexComments    bool // output the opcode bytes as comment
	OffsetComments bool // output the address as comment
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler() Disassembler {
	return Disassembler{
		HexComments:    true,
		OffsetComments: true,
	}
}

// Emulator defines options to control the emulation.
type Emulator struct {
	CyclesPerSecond int
	CycleLimit      uint64
	Headless        bool
	Scale           int

	ShiftUsesVY          bool
	LoadStoreIncrementsI bool

	Foreground string
	Background string
}

// NewEmulator returns a new options instance with default options.
func NewEmulator() Emulator {
	return Emulator{
		CyclesPerSecond: DefaultCyclesPerSecond,
		Scale:           DefaultScale,
		Foreground:      DefaultForeground,
		Background:      DefaultBackground,
	}
}
