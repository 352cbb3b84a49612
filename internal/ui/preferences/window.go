package preferences

import (
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/phasetimer"
	"pomodoro/internal/ui/format"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window edits the saved defaults.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)
	minutes  map[model.Phase]*widget.Entry
	sound    *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Pomodoro Preferences")

	prefs := &Window{
		window:   window,
		settings: settings,
		onSave:   onSave,
		minutes:  make(map[model.Phase]*widget.Entry, 3),
		sound:    widget.NewCheck("Play sounds", nil),
	}

	form := container.New(layout.NewFormLayout())
	for _, phase := range model.Phases() {
		entry := widget.NewEntry()
		prefs.minutes[phase] = entry
		form.Add(widget.NewLabel(phase.FieldLabel()))
		form.Add(entry)
	}

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, container.NewVBox(
		widget.NewLabelWithStyle("Defaults", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		prefs.sound,
	))
	window.SetContent(content)
	window.Resize(fyne.NewSize(360, 260))

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	durations := settings.Durations()
	for phase, entry := range prefs.minutes {
		entry.SetText(format.Minutes(durations.Of(phase)))
	}
	prefs.sound.SetChecked(settings.SoundEnabled)
}

// Settings returns the last saved or loaded settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	for phase, entry := range prefs.minutes {
		if minutes, ok := parseMinutes(entry.Text); ok {
			settings = settings.WithMinutes(phase, minutes)
		}
	}
	settings.SoundEnabled = prefs.sound.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parseMinutes(value string) (float64, bool) {
	minutes, err := phasetimer.ParseMinutes(value)
	if err != nil || !ValidMinutes(minutes) {
		return 0, false
	}
	return minutes, true
}
