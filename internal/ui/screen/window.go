package screen

import (
	"image/color"
	"log/slog"
	"math"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/phasetimer"
	"pomodoro/internal/ui/format"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Controller is the timer surface the screen drives.
type Controller interface {
	Toggle()
	SelectPhase(phase model.Phase) error
	SetDurationText(phase model.Phase, text string) error
	Snapshot() phasetimer.Snapshot
}

// Config defines screen options.
type Config struct {
	Title         string
	Logger        *slog.Logger
	OnPreferences func()
	OnClosed      func()
}

var (
	phaseColors = map[model.Phase]color.NRGBA{
		model.PhaseWork:       {R: 0xF7, G: 0xDC, B: 0x6F, A: 0xFF},
		model.PhaseShortBreak: {R: 0xA2, G: 0xD9, B: 0xCE, A: 0xFF},
		model.PhaseLongBreak:  {R: 0xD7, G: 0xBD, B: 0xE2, A: 0xFF},
	}
	textColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF}
)

const (
	titleSize = 28
	clockSize = 80
)

// Window is the timer screen: phase selector, minute fields, clock and the
// start/stop control.
type Window struct {
	window     fyne.Window
	timer      Controller
	logger     *slog.Logger
	background *canvas.Rectangle
	clock      *canvas.Text
	modes      map[model.Phase]*widget.Button
	fields     map[model.Phase]*numericEntry
	toggle     *widget.Button
	syncing    bool
}

// New builds the screen for timer. Call Show to display it.
func New(app fyne.App, timer Controller, config Config) *Window {
	if config.Title == "" {
		config.Title = "Pomodoro Timer"
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	window := app.NewWindow(config.Title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	screen := &Window{
		window:     window,
		timer:      timer,
		logger:     config.Logger,
		background: canvas.NewRectangle(phaseColors[model.PhaseWork]),
		modes:      make(map[model.Phase]*widget.Button, 3),
		fields:     make(map[model.Phase]*numericEntry, 3),
	}

	title := canvas.NewText(config.Title, textColor)
	title.Alignment = fyne.TextAlignCenter
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = titleSize

	modeButtons := container.NewGridWithColumns(3)
	form := container.New(layout.NewFormLayout())
	for _, phase := range model.Phases() {
		button := widget.NewButton(phase.Label(), func() {
			screen.selectPhase(phase)
		})
		screen.modes[phase] = button
		modeButtons.Add(button)

		field := newNumericEntry()
		field.OnChanged = func(text string) {
			if screen.holdsEdits(phase) {
				return
			}
			screen.editDuration(phase, text)
		}
		field.OnSubmitted = func(text string) {
			screen.editDuration(phase, text)
		}
		field.onFocusLost = func() {
			screen.editDuration(phase, field.Text)
		}
		screen.fields[phase] = field
		label := widget.NewLabelWithStyle(phase.FieldLabel(), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
		form.Add(label)
		form.Add(field)
	}

	screen.clock = canvas.NewText("--:--", textColor)
	screen.clock.Alignment = fyne.TextAlignCenter
	screen.clock.TextStyle = fyne.TextStyle{Bold: true}
	screen.clock.TextSize = clockSize

	screen.toggle = widget.NewButton("START", screen.toggleRunning)
	screen.toggle.Importance = widget.HighImportance

	content := container.NewVBox(title, modeButtons, form, screen.clock, screen.toggle)
	if config.OnPreferences != nil {
		content.Add(widget.NewButton("Preferences", config.OnPreferences))
	}
	centered := container.NewVBox(layout.NewSpacer(), content, layout.NewSpacer())
	window.SetContent(container.NewStack(screen.background, container.NewPadded(centered)))
	window.Resize(fyne.NewSize(420, 640))

	window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		if event.Name == fyne.KeySpace {
			screen.toggleRunning()
		}
	})
	if config.OnClosed != nil {
		window.SetOnClosed(config.OnClosed)
	}

	screen.Render(timer.Snapshot())
	return screen
}

// Show displays the screen.
func (screen *Window) Show() {
	screen.window.Show()
	screen.window.RequestFocus()
}

// HideOnClose makes the window close button hide the screen instead of
// closing it. Used when a tray menu can bring it back.
func (screen *Window) HideOnClose() {
	screen.window.SetCloseIntercept(screen.window.Hide)
}

// Close closes the underlying window.
func (screen *Window) Close() {
	screen.window.Close()
}

// Listen re-renders on every non-sound event until events is closed.
// It must run on its own goroutine.
func (screen *Window) Listen(events <-chan phasetimer.Event) {
	for event := range events {
		if event.Type == phasetimer.EventSound {
			continue
		}
		fyne.Do(func() {
			screen.Render(screen.timer.Snapshot())
		})
	}
}

// Render updates every widget from snapshot. It must run on the UI goroutine.
func (screen *Window) Render(snapshot phasetimer.Snapshot) {
	screen.background.FillColor = phaseColors[snapshot.Phase]
	screen.background.Refresh()

	for phase, button := range screen.modes {
		importance := widget.MediumImportance
		if phase == snapshot.Phase {
			importance = widget.HighImportance
		}
		if button.Importance != importance {
			button.Importance = importance
			button.Refresh()
		}
	}

	focused := screen.window.Canvas().Focused()
	screen.syncing = true
	for phase, field := range screen.fields {
		if fyne.Focusable(field) == focused {
			continue
		}
		if fieldNeedsUpdate(field.Text, snapshot.Durations.Of(phase)) {
			field.SetText(format.Minutes(snapshot.Durations.Of(phase)))
		}
	}
	screen.syncing = false

	screen.clock.Text = format.Clock(snapshot.Remaining)
	screen.clock.Refresh()

	label := "START"
	if snapshot.Running {
		label = "STOP"
	}
	screen.toggle.SetText(label)
}

func (screen *Window) toggleRunning() {
	screen.timer.Toggle()
	screen.Render(screen.timer.Snapshot())
}

func (screen *Window) selectPhase(phase model.Phase) {
	if err := screen.timer.SelectPhase(phase); err != nil {
		screen.logger.Error("select phase", "phase", phase, "error", err)
	}
	screen.Render(screen.timer.Snapshot())
}

// holdsEdits reports whether edits to phase wait for submit or focus loss.
// Partial input for the running phase would otherwise clamp the countdown.
func (screen *Window) holdsEdits(phase model.Phase) bool {
	snapshot := screen.timer.Snapshot()
	return snapshot.Running && snapshot.Phase == phase
}

func (screen *Window) editDuration(phase model.Phase, text string) {
	if screen.syncing {
		return
	}
	if err := screen.timer.SetDurationText(phase, text); err != nil {
		screen.logger.Debug("duration input ignored", "phase", phase, "input", text, "error", err)
		return
	}
	screen.Render(screen.timer.Snapshot())
}

// fieldNeedsUpdate reports whether a field no longer shows seconds. Text that
// parses to the same value, such as "5." or "05", is left alone.
func fieldNeedsUpdate(text string, seconds int) bool {
	minutes, err := phasetimer.ParseMinutes(text)
	if err != nil {
		return true
	}
	return int(math.Round(minutes*60)) != seconds
}
