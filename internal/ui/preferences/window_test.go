package preferences

import (
	"testing"

	"pomodoro/internal/core/model"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowShowsSettings(t *testing.T) {
	app := test.NewTempApp(t)
	settings := DefaultSettings().WithMinutes(model.PhaseShortBreak, 2.5)
	settings.SoundEnabled = false

	prefs := New(app, settings, nil)

	assert.Equal(t, "25", prefs.minutes[model.PhaseWork].Text)
	assert.Equal(t, "2.5", prefs.minutes[model.PhaseShortBreak].Text)
	assert.False(t, prefs.sound.Checked)
}

func TestWindowSaveKeepsPreviousValueForInvalidInput(t *testing.T) {
	app := test.NewTempApp(t)
	var saved *Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = &settings
	})

	prefs.minutes[model.PhaseWork].SetText("50")
	prefs.minutes[model.PhaseShortBreak].SetText("-1")
	prefs.minutes[model.PhaseLongBreak].SetText("long")
	test.Tap(prefs.sound)
	prefs.handleSave()

	require.NotNil(t, saved)
	assert.Equal(t, 50.0, saved.WorkMinutes)
	assert.Equal(t, 5.0, saved.ShortBreakMinutes)
	assert.Equal(t, 15.0, saved.LongBreakMinutes)
	assert.False(t, saved.SoundEnabled)
	assert.Equal(t, *saved, prefs.Settings())
}
