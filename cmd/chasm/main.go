// Package main implements a CHIP-8 assembler and disassembler without the graphical emulator
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/chip8vm/internal/cli"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/fileprocessor"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/pipeline"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/tebeka/atexit"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, disasmOptions, err := cli.ParseToolFlags()
	if opts.Version {
		fmt.Printf("chasm version: %s\n", buildinfo.Version(version, commit, date))
		atexit.Exit(0)
	}
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(opts)
			usageErr.ShowUsage()
		} else {
			logger.Error("Invalid options", log.Err(err))
		}
		atexit.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(opts)

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Error("Selecting files failed", log.Err(err))
		atexit.Exit(1)
	}

	p := pipeline.New(logger, nil)
	modes := detector.New(logger)
	flags := opts.Flags

	exitCode := 0
	for _, file := range files {
		opts.Input = file
		if len(files) > 1 {
			opts.Output = ""
		}

		// the tool does not emulate, files that are not sources are disassembled
		opts.Flags = flags
		if modes.Detect(opts) == options.Emulate {
			opts.Disassemble = true
		}

		if err := fileprocessor.ProcessFile(ctx, logger, p, opts, disasmOptions, options.NewEmulator()); err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				break
			}
			logger.Error("Processing failed", log.String("file", file), log.Err(err))
			exitCode = 1
		}
	}

	atexit.Exit(exitCode)
}

func printBanner(opts options.Program) {
	if opts.Quiet {
		return
	}
	fmt.Println("[-------------------------------------------]")
	fmt.Println("[ chasm - CHIP-8 assembler and disassembler ]")
	fmt.Printf("[-------------------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}
