// Package pipeline orchestrates the emulation, disassembly and assembly workflows.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/chip8vm/internal/assembler"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/program"
	"github.com/retroenv/chip8vm/internal/verification"
	"github.com/retroenv/retrogolib/log"
)

// ErrNoFrontend is returned when a windowed emulation is requested without a frontend.
var ErrNoFrontend = errors.New("no graphical frontend available")

// Frontend runs an interactive emulation session that presents the display, plays the
// sound timer tone and forwards key presses to the machine.
type Frontend interface {
	Run(ctx context.Context, machine *emulator.Machine, scheduler *emulator.Scheduler, opts options.Emulator) error
}

// Result contains the output of one pipeline run.
type Result struct {
	Mode     options.Mode
	Output   []byte             // generated source or ROM, nil for emulation
	Program  *program.Program   // disassembled program, nil for other modes
	Snapshot *emulator.Snapshot // final machine state of an emulation
}

// Pipeline orchestrates a complete run of one operation mode.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
	frontend Frontend
}

// New creates a new pipeline. The frontend is optional, without it only headless
// emulation is supported.
func New(logger *log.Logger, frontend Frontend) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
		frontend: frontend,
	}
}

// Execute loads the input file and runs the detected operation mode on it.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, disasmOpts options.Disassembler,
	emuOpts options.Emulator) (*Result, error) {

	mode := p.detector.Detect(opts)

	switch mode {
	case options.Assemble:
		source, err := p.loader.LoadSource(opts.Input)
		if err != nil {
			return nil, fmt.Errorf("loading source: %w", err)
		}
		return p.ExecuteAssembly(opts, source)

	case options.Disassemble:
		rom, err := p.loader.LoadROM(opts.Input)
		if err != nil {
			return nil, fmt.Errorf("loading rom: %w", err)
		}
		return p.ExecuteDisassembly(ctx, opts, disasmOpts, rom)

	default:
		rom, err := p.loader.LoadROM(opts.Input)
		if err != nil {
			return nil, fmt.Errorf("loading rom: %w", err)
		}
		return p.ExecuteEmulation(ctx, opts, emuOpts, rom)
	}
}

// ExecuteDisassembly disassembles a ROM that is already in memory and verifies the
// generated source if requested.
func (p *Pipeline) ExecuteDisassembly(ctx context.Context, opts options.Program,
	disasmOpts options.Disassembler, rom []byte) (*Result, error) {

	p.printInfo(opts, options.Disassemble, len(rom))

	var buf bytes.Buffer
	dis := disasm.New(p.logger, disasmOpts)
	app, err := dis.Process(ctx, rom, &buf)
	if err != nil {
		return nil, fmt.Errorf("disassembling: %w", err)
	}

	if opts.AssembleTest {
		if err := verification.VerifyOutput(p.logger, opts, rom, buf.String()); err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}

	return &Result{
		Mode:    options.Disassemble,
		Output:  buf.Bytes(),
		Program: app,
	}, nil
}

// ExecuteAssembly assembles a source that is already in memory. Every failing line is
// logged and no output is returned if any line fails.
func (p *Pipeline) ExecuteAssembly(opts options.Program, source string) (*Result, error) {
	p.printInfo(opts, options.Assemble, len(source))

	data, err := assembler.AssembleString(source)
	if err != nil {
		var parseErrs assembler.ParseErrors
		if errors.As(err, &parseErrs) {
			for _, lineErr := range parseErrs {
				p.logger.Error("Assembling line failed",
					log.String("file", opts.Input),
					log.Int("line", lineErr.Line),
					log.String("error", lineErr.Message))
			}
		}
		return nil, fmt.Errorf("assembling: %w", err)
	}
	if data == nil {
		// a source without instructions still produces an empty ROM file
		data = []byte{}
	}

	p.logger.Debug("Assembled program", log.Int("size", len(data)))
	return &Result{
		Mode:   options.Assemble,
		Output: data,
	}, nil
}

// ExecuteEmulation runs a ROM that is already in memory until it halts, the cycle limit
// is reached or the context is canceled. Without the headless option the emulation is
// run by the frontend.
func (p *Pipeline) ExecuteEmulation(ctx context.Context, opts options.Program,
	emuOpts options.Emulator, rom []byte) (*Result, error) {

	p.printInfo(opts, options.Emulate, len(rom))

	machineCfg, schedulerCfg := config.EmulatorConfig(emuOpts)
	machine := emulator.New(machineCfg)
	if err := machine.LoadROM(rom); err != nil {
		return nil, fmt.Errorf("loading rom into memory: %w", err)
	}
	scheduler := emulator.NewScheduler(machine, schedulerCfg)

	var err error
	if emuOpts.Headless {
		err = scheduler.Run(ctx)
	} else {
		if p.frontend == nil {
			return nil, ErrNoFrontend
		}
		err = p.frontend.Run(ctx, machine, scheduler, emuOpts)
	}

	snapshot := machine.Snapshot()
	p.logger.Info("Emulation stopped",
		log.Stringer("state", snapshot.State),
		log.Int("cycles", int(snapshot.Cycles)))
	p.logger.Debug("Machine state", log.Stringer("snapshot", snapshot))

	if err != nil {
		return nil, fmt.Errorf("emulating: %w", err)
	}

	return &Result{
		Mode:     options.Emulate,
		Snapshot: &snapshot,
	}, nil
}

// printInfo prints information about the file being processed.
func (p *Pipeline) printInfo(opts options.Program, mode options.Mode, size int) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Processing CHIP-8 file",
		log.String("file", opts.Input),
		log.String("mode", string(mode)),
		log.Int("size", size),
	)
}
