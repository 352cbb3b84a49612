package terminal

import (
	"pomodoro/internal/core/model"

	"github.com/charmbracelet/lipgloss"
)

var phaseBackgrounds = map[model.Phase]lipgloss.Color{
	model.PhaseWork:       lipgloss.Color("#F7DC6F"),
	model.PhaseShortBreak: lipgloss.Color("#A2D9CE"),
	model.PhaseLongBreak:  lipgloss.Color("#D7BDE2"),
}

const (
	inkColor    = lipgloss.Color("#333333")
	mutedColor  = lipgloss.Color("#CCCCCC")
	brightColor = lipgloss.Color("#FFFFFF")
)

// Styles holds the lipgloss styles for one phase background.
type Styles struct {
	Panel      lipgloss.Style
	Title      lipgloss.Style
	Mode       lipgloss.Style
	ActiveMode lipgloss.Style
	Label      lipgloss.Style
	Clock      lipgloss.Style
	Button     lipgloss.Style
}

func stylesFor(phase model.Phase) Styles {
	background := phaseBackgrounds[phase]
	return Styles{
		Panel: lipgloss.NewStyle().
			Background(background).
			Foreground(inkColor).
			Padding(1, 4),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(inkColor).
			Background(background).
			MarginBottom(1),
		Mode: lipgloss.NewStyle().
			Bold(true).
			Foreground(brightColor).
			Background(mutedColor).
			Padding(0, 2).
			MarginRight(1),
		ActiveMode: lipgloss.NewStyle().
			Bold(true).
			Foreground(brightColor).
			Background(inkColor).
			Padding(0, 2).
			MarginRight(1),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(inkColor).
			Background(background).
			Width(20),
		Clock: lipgloss.NewStyle().
			Bold(true).
			Foreground(inkColor).
			Background(background).
			Margin(1, 0),
		Button: lipgloss.NewStyle().
			Bold(true).
			Foreground(brightColor).
			Background(inkColor).
			Padding(0, 6),
	}
}
