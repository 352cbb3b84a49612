package terminal

import (
	"log/slog"
	"math"
	"strings"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/phasetimer"
	"pomodoro/internal/ui/format"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Controller is the timer surface the terminal screen drives.
type Controller interface {
	Toggle()
	SelectPhase(phase model.Phase) error
	SetDurationText(phase model.Phase, text string) error
	Snapshot() phasetimer.Snapshot
}

type eventMsg phasetimer.Event

type eventsClosedMsg struct{}

const noFocus = -1

// Model is the bubbletea rendition of the timer screen.
type Model struct {
	timer    Controller
	events   <-chan phasetimer.Event
	logger   *slog.Logger
	snapshot phasetimer.Snapshot
	phases   []model.Phase
	fields   []textinput.Model
	focus    int
	keys     keyMap
	help     help.Model
	width    int
	height   int
	quitting bool
}

// New creates the terminal screen. events may be nil when the caller
// re-renders some other way.
func New(timer Controller, events <-chan phasetimer.Event, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Model{
		timer:  timer,
		events: events,
		logger: logger,
		phases: model.Phases(),
		focus:  noFocus,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}

	m.fields = make([]textinput.Model, len(m.phases))
	for i := range m.phases {
		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = 8
		input.Width = 8
		m.fields[i] = input
	}

	m.refresh()
	return m
}

// Init starts listening for timer events.
func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// Update handles key presses and timer events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case eventMsg:
		m.refresh()
		return m, m.waitForEvent()

	case eventsClosedMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.focus != noFocus {
			return m, m.updateField(msg)
		}
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.timer.Toggle()
	case key.Matches(msg, m.keys.Work):
		m.selectPhase(model.PhaseWork)
	case key.Matches(msg, m.keys.ShortBreak):
		m.selectPhase(model.PhaseShortBreak)
	case key.Matches(msg, m.keys.LongBreak):
		m.selectPhase(model.PhaseLongBreak)
	case key.Matches(msg, m.keys.NextField):
		return m.focusField(0)
	default:
		return nil
	}
	m.refresh()
	return nil
}

func (m *Model) updateField(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.NextField):
		return m.focusField(m.focus + 1)
	case key.Matches(msg, m.keys.Blur):
		return m.focusField(noFocus)
	}

	index := m.focus
	before := m.fields[index].Value()
	var cmd tea.Cmd
	m.fields[index], cmd = m.fields[index].Update(msg)
	if m.fields[index].Value() != before && !m.holdsEdits(index) {
		m.commitField(index)
	}
	return cmd
}

// holdsEdits reports whether field index waits for blur before applying.
// Partial input for the running phase would otherwise clamp the countdown.
func (m *Model) holdsEdits(index int) bool {
	snapshot := m.timer.Snapshot()
	return snapshot.Running && snapshot.Phase == m.phases[index]
}

func (m *Model) commitField(index int) {
	phase := m.phases[index]
	text := m.fields[index].Value()
	if err := m.timer.SetDurationText(phase, text); err != nil {
		m.logger.Debug("duration input ignored", "phase", phase, "input", text, "error", err)
		return
	}
	m.refresh()
}

// focusField moves input focus; indexes past the last field release it.
// The field losing focus is applied first.
func (m *Model) focusField(index int) tea.Cmd {
	if m.focus != noFocus {
		m.fields[m.focus].Blur()
		m.commitField(m.focus)
	}
	if index < 0 || index >= len(m.fields) {
		m.focus = noFocus
		m.refresh()
		return nil
	}
	m.focus = index
	m.refresh()
	cmd := m.fields[index].Focus()
	m.fields[index].CursorEnd()
	return cmd
}

func (m *Model) selectPhase(phase model.Phase) {
	if err := m.timer.SelectPhase(phase); err != nil {
		m.logger.Error("select phase", "phase", phase, "error", err)
	}
}

// refresh pulls a fresh snapshot and rewrites every unfocused field.
func (m *Model) refresh() {
	m.snapshot = m.timer.Snapshot()
	for i, phase := range m.phases {
		if i == m.focus {
			continue
		}
		seconds := m.snapshot.Durations.Of(phase)
		if fieldNeedsUpdate(m.fields[i].Value(), seconds) {
			m.fields[i].SetValue(format.Minutes(seconds))
		}
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		for event := range events {
			if event.Type != phasetimer.EventSound {
				return eventMsg(event)
			}
		}
		return eventsClosedMsg{}
	}
}

// View renders the screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	styles := stylesFor(m.snapshot.Phase)
	var b strings.Builder

	b.WriteString(styles.Title.Render("Pomodoro Timer"))
	b.WriteString("\n")

	modes := make([]string, 0, len(m.phases))
	for _, phase := range m.phases {
		style := styles.Mode
		if phase == m.snapshot.Phase {
			style = styles.ActiveMode
		}
		modes = append(modes, style.Render(phase.Label()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, modes...))
	b.WriteString("\n\n")

	for i, phase := range m.phases {
		b.WriteString(styles.Label.Render(phase.FieldLabel()))
		b.WriteString(m.fields[i].View())
		b.WriteString("\n")
	}

	b.WriteString(styles.Clock.Render(format.Clock(m.snapshot.Remaining)))
	b.WriteString("\n")

	label := "START"
	if m.snapshot.Running {
		label = "STOP"
	}
	b.WriteString(styles.Button.Render(label))

	panel := styles.Panel.Render(b.String())
	if m.width > 0 && m.height > 0 {
		panel = lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, panel)
	}
	return panel + "\n" + m.help.View(m.keys)
}

// fieldNeedsUpdate reports whether text no longer shows seconds. Text that
// parses to the same value, such as "5." or "05", is left alone.
func fieldNeedsUpdate(text string, seconds int) bool {
	minutes, err := phasetimer.ParseMinutes(text)
	if err != nil {
		return true
	}
	return int(math.Round(minutes*60)) != seconds
}
