package phasetimer

import (
	"context"
	"sync"
	"time"

	"pomodoro/internal/core/model"
)

// Config contains runtime options for Runner.
type Config struct {
	TickInterval time.Duration
}

// Runner drives a PhaseTimer from a ticker goroutine. The ticker only exists
// while the timer is running and is torn down on stop, rollover and Close.
type Runner struct {
	mu      sync.Mutex
	timer   *PhaseTimer
	options Config
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	closed  bool
}

// NewRunner wraps timer. The runner owns the timer from now on.
func NewRunner(timer *PhaseTimer, options Config) *Runner {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	return &Runner{
		timer:   timer,
		options: options,
	}
}

// Subscribe registers a new observer channel on the underlying timer.
func (runner *Runner) Subscribe(buffer int) <-chan Event {
	return runner.timer.Subscribe(buffer)
}

// Snapshot returns a copy of the timer state.
func (runner *Runner) Snapshot() Snapshot {
	return runner.timer.Snapshot()
}

// Toggle flips running state, starting or stopping the ticker to match.
func (runner *Runner) Toggle() {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.closed {
		return
	}
	runner.timer.ToggleRunning()
	runner.syncLocked()
}

// Start starts the countdown if it is stopped.
func (runner *Runner) Start() {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.closed {
		return
	}
	runner.timer.Start()
	runner.syncLocked()
}

// Stop pauses the countdown and tears down the ticker.
func (runner *Runner) Stop() {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.closed {
		return
	}
	runner.timer.Stop()
	runner.syncLocked()
}

// SelectPhase switches phase, which always stops the countdown.
func (runner *Runner) SelectPhase(phase model.Phase) error {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.closed {
		return nil
	}
	err := runner.timer.SelectPhase(phase)
	runner.syncLocked()
	return err
}

// SetDuration updates the configured minutes for phase.
func (runner *Runner) SetDuration(phase model.Phase, minutes float64) error {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.closed {
		return nil
	}
	return runner.timer.SetDuration(phase, minutes)
}

// SetDurationText parses and applies a minutes field.
func (runner *Runner) SetDurationText(phase model.Phase, text string) error {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.closed {
		return nil
	}
	return runner.timer.SetDurationText(phase, text)
}

// Close stops the countdown for good, waits for the ticker goroutine to
// exit and closes all observers.
func (runner *Runner) Close() {
	runner.mu.Lock()
	if runner.closed {
		runner.mu.Unlock()
		return
	}
	runner.closed = true
	runner.timer.Stop()
	runner.stopTickerLocked()
	runner.mu.Unlock()

	runner.wg.Wait()
	runner.timer.Close()
}

func (runner *Runner) syncLocked() {
	running := runner.timer.Running()
	if running && runner.cancel == nil {
		ctx, cancel := context.WithCancel(context.Background())
		runner.cancel = cancel
		runner.wg.Add(1)
		go runner.run(ctx)
		return
	}
	if !running {
		runner.stopTickerLocked()
	}
}

func (runner *Runner) stopTickerLocked() {
	if runner.cancel != nil {
		runner.cancel()
		runner.cancel = nil
	}
}

func (runner *Runner) run(ctx context.Context) {
	defer runner.wg.Done()
	ticker := time.NewTicker(runner.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !runner.deliverTick(ctx) {
				return
			}
		}
	}
}

// deliverTick runs under the runner lock so a tick from a cancelled loop can
// never reach the timer after a stop and restart.
func (runner *Runner) deliverTick(ctx context.Context) bool {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	if runner.timer.Tick() {
		return true
	}
	runner.stopTickerLocked()
	return false
}
