// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/chip8vm/internal/options"
	"golang.org/x/image/colornames"
)

// ParseFlags parses the command line flags of the emulator binary and returns the program,
// disassembler and emulator options.
func ParseFlags() (options.Program, options.Disassembler, options.Emulator, error) {
	flags := newFlagSet()
	var opts options.Program
	readOptionFlags(flags, &opts)
	readOutputFlags(flags, &opts)
	readEmulatorFlags(flags, &opts)

	if err := parse(flags, &opts); err != nil {
		return opts, options.Disassembler{}, options.Emulator{}, err
	}

	if err := validateOptionCombinations(opts); err != nil {
		return opts, options.Disassembler{}, options.Emulator{}, err
	}
	if err := validateEmulatorOptions(opts); err != nil {
		return opts, options.Disassembler{}, options.Emulator{}, err
	}

	return opts, createDisasmOptions(opts), createEmulatorOptions(opts), nil
}

// ParseToolFlags parses the command line flags of the assembler and disassembler tool that
// does not include the emulator.
func ParseToolFlags() (options.Program, options.Disassembler, error) {
	flags := newFlagSet()
	var opts options.Program
	readOptionFlags(flags, &opts)
	readOutputFlags(flags, &opts)
	flags.BoolVar(&opts.Version, "version", false, "print version and exit")

	if err := parse(flags, &opts); err != nil {
		if opts.Version {
			return opts, options.Disassembler{}, nil
		}
		return opts, options.Disassembler{}, err
	}

	if err := validateOptionCombinations(opts); err != nil {
		return opts, options.Disassembler{}, err
	}

	return opts, createDisasmOptions(opts), nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage information and all flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: %s [options] <file>\n\n", e.flags.Name())
	e.flags.PrintDefaults()
	fmt.Println()
}

func newFlagSet() *flag.FlagSet {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.Usage = func() {}
	return flags
}

// parse parses the flags and sets the input file from the positional argument.
func parse(flags *flag.FlagSet, opts *options.Program) error {
	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "") {
		msg := "missing input file"
		if err != nil {
			msg = err.Error()
		}
		return &UsageError{flags: flags, msg: msg}
	}

	if err := validateArgs(flags, args); err != nil {
		return err
	}

	if opts.Batch == "" {
		opts.Input = args[0]
	}
	return nil
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after input file, please pass the input file as last argument", arg),
			}
		}
	}
	return nil
}

// validateOptionCombinations checks for options that can not be used together.
func validateOptionCombinations(opts options.Program) error {
	if opts.Disassemble && opts.Assemble {
		return errors.New("options -d and -a can not be used together")
	}
	if opts.AssembleTest && opts.Assemble {
		return errors.New("option -verify can only be used for disassembly")
	}
	return nil
}

// validateEmulatorOptions checks the emulator option values.
func validateEmulatorOptions(opts options.Program) error {
	if opts.CyclesPerSecond <= 0 || opts.CyclesPerSecond > emulator.MaxCyclesPerSecond {
		return fmt.Errorf("invalid cycles per second %d", opts.CyclesPerSecond)
	}
	if opts.Scale <= 0 {
		return fmt.Errorf("invalid window scale %d", opts.Scale)
	}
	for _, name := range []string{opts.Foreground, opts.Background} {
		if _, ok := colornames.Map[strings.ToLower(name)]; !ok {
			return fmt.Errorf("unsupported color name '%s'", name)
		}
	}
	return nil
}

// createDisasmOptions creates disassembler options based on program options
func createDisasmOptions(opts options.Program) options.Disassembler {
	disasmOptions := options.NewDisassembler()
	disasmOptions.HexComments = !opts.NoHexComments
	disasmOptions.OffsetComments = !opts.NoOffsets
	return disasmOptions
}

// createEmulatorOptions creates emulator options based on program options
func createEmulatorOptions(opts options.Program) options.Emulator {
	emuOptions := options.NewEmulator()
	emuOptions.CyclesPerSecond = opts.CyclesPerSecond
	emuOptions.CycleLimit = opts.Cycles
	emuOptions.Headless = opts.Headless
	emuOptions.Scale = opts.Scale
	emuOptions.ShiftUsesVY = opts.ShiftUsesVY
	emuOptions.LoadStoreIncrementsI = opts.LoadStoreIncrementsI
	emuOptions.Foreground = strings.ToLower(opts.Foreground)
	emuOptions.Background = strings.ToLower(opts.Background)
	return emuOptions
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output file, derived from the input file name if not given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically name the output files, for example *.ch8")
	flags.BoolVar(&opts.Disassemble, "d", false, "disassemble the ROM to a .chasm source file")
	flags.BoolVar(&opts.Assemble, "a", false, "assemble the .chasm source file to a ROM")
	flags.BoolVar(&opts.AssembleTest, "verify", false, "verify the generated output by assembling it and check if it matches the input")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readOutputFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in comments")
}

func readEmulatorFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.Headless, "headless", false, "run the emulation without a window")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "stop the emulation after the given number of cycles, 0 runs until halt")
	flags.IntVar(&opts.CyclesPerSecond, "hz", options.DefaultCyclesPerSecond, "instructions executed per second")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "window scale factor")
	flags.BoolVar(&opts.ShiftUsesVY, "shift-vy", false, "SHR and SHL shift VY into VX instead of shifting VX")
	flags.BoolVar(&opts.LoadStoreIncrementsI, "loadstore-inc-i", false, "LD [I], Vx and LD Vx, [I] increment I")
	flags.StringVar(&opts.Foreground, "fg", options.DefaultForeground, "foreground color name")
	flags.StringVar(&opts.Background, "bg", options.DefaultBackground, "background color name")
}
