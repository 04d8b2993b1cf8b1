// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// EmulatorConfig converts the emulator options to the machine and scheduler settings.
func EmulatorConfig(opts options.Emulator) (emulator.Config, emulator.SchedulerConfig) {
	machineCfg := emulator.Config{
		Quirks: emulator.Quirks{
			ShiftUsesVY:          opts.ShiftUsesVY,
			LoadStoreIncrementsI: opts.LoadStoreIncrementsI,
		},
	}

	schedulerCfg := emulator.SchedulerConfig{
		CyclesPerSecond: opts.CyclesPerSecond,
		CycleLimit:      opts.CycleLimit,
	}
	return machineCfg, schedulerCfg
}
