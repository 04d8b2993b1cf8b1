package emulator

import (
	"context"
	"errors"
	"time"
)

// Timing constants.
const (
	// DefaultCyclesPerSecond is the default instruction rate.
	DefaultCyclesPerSecond = 700

	// MaxCyclesPerSecond is the highest instruction rate, one cycle per nanosecond.
	MaxCyclesPerSecond = int(time.Second)

	// TimerFrequency is the rate in Hz at which the delay and sound timers decrement.
	TimerFrequency = 60

	// TimerPeriod is the time between two timer ticks.
	TimerPeriod = time.Second / TimerFrequency

	// maxAdvance limits the time a single Run iteration catches up on, for example
	// after the process was suspended.
	maxAdvance = 250 * time.Millisecond
)

// SchedulerConfig contains the scheduler settings.
type SchedulerConfig struct {
	CyclesPerSecond int    // instruction rate, 0 selects DefaultCyclesPerSecond, capped at MaxCyclesPerSecond
	CycleLimit      uint64 // stop after this many cycles, 0 for no limit
}

// Scheduler couples the instruction clock of a machine with the fixed 60 Hz
// timer clock. Elapsed wall time is distributed to both clocks so that timers
// decrement at the same rate independent of the instruction rate.
type Scheduler struct {
	machine       *Machine
	cycleDuration time.Duration
	cycleLimit    uint64

	cycleBudget time.Duration // elapsed time not yet spent on cycles
	timerBudget time.Duration // elapsed time not yet spent on timer ticks
}

// NewScheduler returns a scheduler that drives the given machine.
func NewScheduler(machine *Machine, cfg SchedulerConfig) *Scheduler {
	rate := cfg.CyclesPerSecond
	if rate <= 0 {
		rate = DefaultCyclesPerSecond
	}
	rate = min(rate, MaxCyclesPerSecond)

	return &Scheduler{
		machine:       machine,
		cycleDuration: time.Second / time.Duration(rate),
		cycleLimit:    cfg.CycleLimit,
	}
}

// Advance runs the cycles and timer ticks that fall into the elapsed time, in
// the order they are due. It returns the error of a halting cycle or
// ErrCycleLimit once the cycle limit is reached.
func (s *Scheduler) Advance(elapsed time.Duration) error {
	s.cycleBudget += elapsed
	s.timerBudget += elapsed

	for {
		// the event with the larger remaining budget was due earlier
		cycleDue := s.cycleBudget - s.cycleDuration
		timerDue := s.timerBudget - TimerPeriod
		if cycleDue < 0 && timerDue < 0 {
			return nil
		}

		if timerDue >= cycleDue {
			s.timerBudget -= TimerPeriod
			s.machine.Tick()
			continue
		}

		if s.cycleLimit > 0 && s.machine.Cycles() >= s.cycleLimit {
			s.cycleBudget = 0
			return ErrCycleLimit
		}

		s.cycleBudget -= s.cycleDuration
		if err := s.machine.Step(); err != nil {
			s.cycleBudget = 0
			return err
		}
	}
}

// Run drives the machine in real time until the context is cancelled, the
// machine halts or the cycle limit is reached. Cancellation and the cycle limit
// are not reported as errors.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(TimerPeriod)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case now := <-ticker.C:
			elapsed := min(now.Sub(last), maxAdvance)
			last = now

			if err := s.Advance(elapsed); err != nil {
				if errors.Is(err, ErrCycleLimit) {
					return nil
				}
				return err
			}
		}
	}
}
