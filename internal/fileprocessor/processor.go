// Package fileprocessor handles file selection, output naming and writing of results
package fileprocessor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/pipeline"
	"github.com/retroenv/retrogolib/log"
)

// AssembledSuffix is appended to the base name of assembled ROM files, to avoid
// overwriting the original ROM of a disassembled source.
const AssembledSuffix = "_a.ch8"

// ProcessFile runs the pipeline for the input file of the options and writes the result
// to the output file. Nothing is written if the pipeline fails.
func ProcessFile(ctx context.Context, logger *log.Logger, p *pipeline.Pipeline, opts options.Program,
	disasmOptions options.Disassembler, emuOptions options.Emulator) error {

	result, err := p.Execute(ctx, opts, disasmOptions, emuOptions)
	if err != nil {
		return err
	}
	if result.Output == nil {
		return nil
	}

	output := opts.Output
	if output == "" {
		output = GenerateOutputFilename(opts.Input, result.Mode)
	}

	if err := os.WriteFile(output, result.Output, 0o644); err != nil {
		return fmt.Errorf("writing output file %s: %w", output, err)
	}

	logger.Debug("Output written",
		log.String("file", output),
		log.Int("size", len(result.Output)))
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file and mode.
// Emulation does not produce an output file and returns an empty name.
func GenerateOutputFilename(inputFile string, mode options.Mode) string {
	ext := filepath.Ext(inputFile)
	base := inputFile[:len(inputFile)-len(ext)]

	switch mode {
	case options.Disassemble:
		return base + detector.SourceExtension
	case options.Assemble:
		return base + AssembledSuffix
	default:
		return ""
	}
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, name, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info(name, log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
