package screen

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/phasetimer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScreen(t *testing.T) (*Window, *phasetimer.Runner) {
	t.Helper()
	app := test.NewTempApp(t)
	runner := phasetimer.NewRunner(phasetimer.New(model.DefaultDurations()), phasetimer.Config{TickInterval: time.Hour})
	t.Cleanup(runner.Close)
	screen := New(app, runner, Config{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	t.Cleanup(screen.Close)
	return screen, runner
}

func TestInitialRender(t *testing.T) {
	screen, _ := newTestScreen(t)

	assert.Equal(t, "25:00", screen.clock.Text)
	assert.Equal(t, "START", screen.toggle.Text)
	assert.Equal(t, "25", screen.fields[model.PhaseWork].Text)
	assert.Equal(t, "5", screen.fields[model.PhaseShortBreak].Text)
	assert.Equal(t, "15", screen.fields[model.PhaseLongBreak].Text)
	assert.Equal(t, widget.HighImportance, screen.modes[model.PhaseWork].Importance)
	assert.Equal(t, widget.MediumImportance, screen.modes[model.PhaseLongBreak].Importance)
	assert.Equal(t, phaseColors[model.PhaseWork], screen.background.FillColor)
}

func TestToggleButtonStartsAndStops(t *testing.T) {
	screen, runner := newTestScreen(t)

	test.Tap(screen.toggle)
	assert.True(t, runner.Snapshot().Running)
	assert.Equal(t, "STOP", screen.toggle.Text)

	test.Tap(screen.toggle)
	assert.False(t, runner.Snapshot().Running)
	assert.Equal(t, "START", screen.toggle.Text)
}

func TestSpaceTogglesWhenNothingFocused(t *testing.T) {
	screen, runner := newTestScreen(t)

	screen.window.Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeySpace})

	assert.True(t, runner.Snapshot().Running)
}

func TestModeButtonSwitchesPhase(t *testing.T) {
	screen, runner := newTestScreen(t)
	test.Tap(screen.toggle)

	test.Tap(screen.modes[model.PhaseShortBreak])

	snapshot := runner.Snapshot()
	assert.Equal(t, model.PhaseShortBreak, snapshot.Phase)
	assert.False(t, snapshot.Running)
	assert.Equal(t, "05:00", screen.clock.Text)
	assert.Equal(t, "START", screen.toggle.Text)
	assert.Equal(t, widget.HighImportance, screen.modes[model.PhaseShortBreak].Importance)
	assert.Equal(t, widget.MediumImportance, screen.modes[model.PhaseWork].Importance)
	assert.Equal(t, phaseColors[model.PhaseShortBreak], screen.background.FillColor)
}

func TestEditingActiveFieldResyncsClock(t *testing.T) {
	screen, runner := newTestScreen(t)
	field := screen.fields[model.PhaseWork]

	field.SetText("")
	test.Type(field, "10")

	assert.Equal(t, 600, runner.Snapshot().Durations.Work)
	assert.Equal(t, "10:00", screen.clock.Text)
	assert.Equal(t, "10", field.Text)
}

func TestRunningFieldAppliesOnFocusLost(t *testing.T) {
	screen, runner := newTestScreen(t)
	field := screen.fields[model.PhaseWork]
	test.Tap(screen.toggle)
	require.True(t, runner.Snapshot().Running)

	screen.window.Canvas().Focus(field)
	for _, text := range []string{"", "3", "30"} {
		field.SetText(text)
		snapshot := runner.Snapshot()
		assert.Equal(t, 1500, snapshot.Durations.Work, text)
		assert.Equal(t, 1500, snapshot.Remaining, text)
	}

	screen.window.Canvas().Unfocus()

	snapshot := runner.Snapshot()
	assert.Equal(t, 1800, snapshot.Durations.Work)
	assert.Equal(t, 1500, snapshot.Remaining)
	assert.True(t, snapshot.Running)
	assert.Equal(t, "30", field.Text)
}

func TestRunningFieldAppliesOnSubmit(t *testing.T) {
	screen, runner := newTestScreen(t)
	field := screen.fields[model.PhaseWork]
	test.Tap(screen.toggle)

	field.SetText("20")
	require.Equal(t, 1500, runner.Snapshot().Durations.Work)
	field.OnSubmitted(field.Text)

	snapshot := runner.Snapshot()
	assert.Equal(t, 1200, snapshot.Durations.Work)
	assert.Equal(t, 1200, snapshot.Remaining)
	assert.True(t, snapshot.Running)
}

func TestInvalidFieldInputKeepsDuration(t *testing.T) {
	screen, runner := newTestScreen(t)
	field := screen.fields[model.PhaseLongBreak]

	field.SetText("abc")

	require.Equal(t, 900, runner.Snapshot().Durations.LongBreak)
	assert.Equal(t, "25:00", screen.clock.Text)
}

func TestRenderReflectsExternalChanges(t *testing.T) {
	screen, runner := newTestScreen(t)

	require.NoError(t, runner.SetDuration(model.PhaseShortBreak, 7.5))
	screen.Render(runner.Snapshot())

	assert.Equal(t, "7.5", screen.fields[model.PhaseShortBreak].Text)
	assert.Equal(t, 450, runner.Snapshot().Durations.ShortBreak)
}

func TestFieldNeedsUpdate(t *testing.T) {
	assert.False(t, fieldNeedsUpdate("5", 300))
	assert.False(t, fieldNeedsUpdate("5.", 300))
	assert.False(t, fieldNeedsUpdate("05", 300))
	assert.True(t, fieldNeedsUpdate("6", 300))
	assert.True(t, fieldNeedsUpdate("", 300))
	assert.True(t, fieldNeedsUpdate("-5", 300))
}
