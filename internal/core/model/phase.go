package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPhase indicates a value that is not one of the three phases.
var ErrUnknownPhase = errors.New("unknown phase")

// Phase identifies one step of the pomodoro cycle.
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Phases lists the phases in display order.
func Phases() []Phase {
	return []Phase{PhaseWork, PhaseShortBreak, PhaseLongBreak}
}

// Valid reports whether phase is a known phase.
func (phase Phase) Valid() bool {
	switch phase {
	case PhaseWork, PhaseShortBreak, PhaseLongBreak:
		return true
	default:
		return false
	}
}

// Next returns the phase that follows on rollover.
// Work goes to ShortBreak, ShortBreak to LongBreak, LongBreak back to Work.
func (phase Phase) Next() Phase {
	switch phase {
	case PhaseWork:
		return PhaseShortBreak
	case PhaseShortBreak:
		return PhaseLongBreak
	default:
		return PhaseWork
	}
}

// Label returns the button caption for the phase.
func (phase Phase) Label() string {
	switch phase {
	case PhaseWork:
		return "Pomodoro"
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	default:
		return string(phase)
	}
}

// FieldLabel returns the caption of the minutes field for the phase.
func (phase Phase) FieldLabel() string {
	switch phase {
	case PhaseWork:
		return "Work (min):"
	case PhaseShortBreak:
		return "Short Break (min):"
	case PhaseLongBreak:
		return "Long Break (min):"
	default:
		return string(phase)
	}
}

// ParsePhase accepts the canonical names plus a few short aliases.
func ParsePhase(value string) (Phase, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "work", "pomo", "pomodoro":
		return PhaseWork, nil
	case "short_break", "short", "short-break":
		return PhaseShortBreak, nil
	case "long_break", "long", "long-break", "break":
		return PhaseLongBreak, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPhase, value)
}

// Sound identifies an audible event emitted by the timer.
type Sound string

const (
	SoundClick Sound = "click"
	SoundEnd   Sound = "end"
)
