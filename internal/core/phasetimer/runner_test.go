package phasetimer

import (
	"testing"
	"time"

	"pomodoro/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTick = 2 * time.Millisecond

func newTestRunner(t *testing.T, durations model.Durations) *Runner {
	t.Helper()
	runner := NewRunner(New(durations), Config{TickInterval: testTick})
	t.Cleanup(runner.Close)
	return runner
}

func TestRunnerDefaultsTickInterval(t *testing.T) {
	runner := NewRunner(New(model.DefaultDurations()), Config{})
	defer runner.Close()

	assert.Equal(t, time.Second, runner.options.TickInterval)
}

func TestRunnerCountsDownAndRollsOver(t *testing.T) {
	runner := newTestRunner(t, model.Durations{Work: 3, ShortBreak: 7, LongBreak: 9})
	events := runner.Subscribe(64)

	runner.Toggle()

	require.Eventually(t, func() bool {
		return runner.Snapshot().Phase == model.PhaseShortBreak
	}, time.Second, time.Millisecond)

	snapshot := runner.Snapshot()
	assert.False(t, snapshot.Running)
	assert.Equal(t, 7, snapshot.Remaining)

	// The ticker is torn down on rollover, so the countdown must not move.
	time.Sleep(20 * testTick)
	assert.Equal(t, 7, runner.Snapshot().Remaining)
	assert.Equal(t, []model.Sound{model.SoundClick, model.SoundEnd}, sounds(drain(events)))
}

func TestRunnerStopHaltsTicks(t *testing.T) {
	runner := newTestRunner(t, model.DefaultDurations())

	runner.Toggle()
	require.Eventually(t, func() bool {
		return runner.Snapshot().Remaining < 1500
	}, time.Second, time.Millisecond)
	runner.Toggle()

	stopped := runner.Snapshot()
	assert.False(t, stopped.Running)
	time.Sleep(20 * testTick)
	assert.Equal(t, stopped, runner.Snapshot())

	runner.mu.Lock()
	assert.Nil(t, runner.cancel)
	runner.mu.Unlock()
}

func TestRunnerResumeContinuesFromPausedValue(t *testing.T) {
	runner := newTestRunner(t, model.DefaultDurations())

	runner.Start()
	require.Eventually(t, func() bool {
		return runner.Snapshot().Remaining <= 1498
	}, time.Second, time.Millisecond)
	runner.Stop()
	paused := runner.Snapshot().Remaining

	runner.Start()
	require.Eventually(t, func() bool {
		return runner.Snapshot().Remaining < paused
	}, time.Second, time.Millisecond)
}

func TestRunnerSelectPhaseStopsTicker(t *testing.T) {
	runner := newTestRunner(t, model.DefaultDurations())

	runner.Start()
	require.NoError(t, runner.SelectPhase(model.PhaseLongBreak))

	time.Sleep(20 * testTick)
	snapshot := runner.Snapshot()
	assert.False(t, snapshot.Running)
	assert.Equal(t, 900, snapshot.Remaining)
}

func TestRunnerSelectPhaseRejectsUnknown(t *testing.T) {
	runner := newTestRunner(t, model.DefaultDurations())

	err := runner.SelectPhase(model.Phase("nap"))

	require.ErrorIs(t, err, model.ErrUnknownPhase)
}

func TestRunnerSetDurationKeepsRunning(t *testing.T) {
	runner := newTestRunner(t, model.DefaultDurations())

	runner.Start()
	require.NoError(t, runner.SetDuration(model.PhaseShortBreak, 1))
	require.ErrorIs(t, runner.SetDurationText(model.PhaseShortBreak, "soon"), ErrInvalidDuration)

	snapshot := runner.Snapshot()
	assert.True(t, snapshot.Running)
	assert.Equal(t, 60, snapshot.Durations.ShortBreak)
}

func TestRunnerCloseTearsDownForGood(t *testing.T) {
	runner := NewRunner(New(model.DefaultDurations()), Config{TickInterval: testTick})
	events := runner.Subscribe(64)

	runner.Start()
	runner.Close()
	closed := runner.Snapshot()
	assert.False(t, closed.Running)

	runner.Toggle()
	runner.Start()
	time.Sleep(20 * testTick)
	assert.Equal(t, closed, runner.Snapshot())

	for range events {
	}
	runner.Close()
}
