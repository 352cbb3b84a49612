package model

import "time"

// Default phase lengths in seconds.
const (
	DefaultWorkSeconds       = 25 * 60
	DefaultShortBreakSeconds = 5 * 60
	DefaultLongBreakSeconds  = 15 * 60
)

// Durations holds the configured length of each phase in whole seconds.
type Durations struct {
	Work       int
	ShortBreak int
	LongBreak  int
}

// DefaultDurations returns 25/5/15 minutes.
func DefaultDurations() Durations {
	return Durations{
		Work:       DefaultWorkSeconds,
		ShortBreak: DefaultShortBreakSeconds,
		LongBreak:  DefaultLongBreakSeconds,
	}
}

// Of returns the configured seconds for phase.
func (durations Durations) Of(phase Phase) int {
	switch phase {
	case PhaseWork:
		return durations.Work
	case PhaseShortBreak:
		return durations.ShortBreak
	case PhaseLongBreak:
		return durations.LongBreak
	default:
		return 0
	}
}

// With returns a copy with phase set to seconds.
func (durations Durations) With(phase Phase, seconds int) Durations {
	switch phase {
	case PhaseWork:
		durations.Work = seconds
	case PhaseShortBreak:
		durations.ShortBreak = seconds
	case PhaseLongBreak:
		durations.LongBreak = seconds
	}
	return durations
}

// Duration returns the configured length of phase as a time.Duration.
func (durations Durations) Duration(phase Phase) time.Duration {
	return time.Duration(durations.Of(phase)) * time.Second
}

// Normalize replaces negative entries with their defaults.
func (durations Durations) Normalize() Durations {
	defaults := DefaultDurations()
	for _, phase := range Phases() {
		if durations.Of(phase) < 0 {
			durations = durations.With(phase, defaults.Of(phase))
		}
	}
	return durations
}
