// Package main implements the main entry point for a CHIP-8 emulator, assembler and disassembler
package main

import (
	"context"
	"errors"

	"github.com/retroenv/chip8vm/internal/cli"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/fileprocessor"
	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/chip8vm/internal/pipeline"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/tebeka/atexit"
)

const name = "chip8vm"

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, disasmOptions, emuOptions, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, name, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Error("Invalid options", log.Err(err))
		}
		atexit.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, name, version, commit, date)

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Error("Selecting files failed", log.Err(err))
		atexit.Exit(1)
	}

	front := frontend.New(logger)
	atexit.Register(front.Close)
	p := pipeline.New(logger, front)

	exitCode := 0
	for _, file := range files {
		opts.Input = file
		if len(files) > 1 {
			opts.Output = ""
		}

		if err := fileprocessor.ProcessFile(ctx, logger, p, opts, disasmOptions, emuOptions); err != nil {
			// Handle context cancellation (Ctrl+C) gracefully
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
