package preferences

import (
	"math"

	"pomodoro/internal/core/model"
)

// Settings defines the saved defaults for a timer screen.
type Settings struct {
	WorkMinutes       float64
	ShortBreakMinutes float64
	LongBreakMinutes  float64
	SoundEnabled      bool
}

// DefaultSettings returns 25/5/15 minutes with sound on.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:       25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		SoundEnabled:      true,
	}
}

// Minutes returns the configured minutes for phase.
func (settings Settings) Minutes(phase model.Phase) float64 {
	switch phase {
	case model.PhaseWork:
		return settings.WorkMinutes
	case model.PhaseShortBreak:
		return settings.ShortBreakMinutes
	case model.PhaseLongBreak:
		return settings.LongBreakMinutes
	default:
		return 0
	}
}

// WithMinutes returns a copy with phase set to minutes.
func (settings Settings) WithMinutes(phase model.Phase, minutes float64) Settings {
	switch phase {
	case model.PhaseWork:
		settings.WorkMinutes = minutes
	case model.PhaseShortBreak:
		settings.ShortBreakMinutes = minutes
	case model.PhaseLongBreak:
		settings.LongBreakMinutes = minutes
	}
	return settings
}

// Durations converts settings to whole seconds. Invalid minutes fall back to
// the defaults.
func (settings Settings) Durations() model.Durations {
	defaults := model.DefaultDurations()
	var durations model.Durations
	for _, phase := range model.Phases() {
		seconds := defaults.Of(phase)
		if ValidMinutes(settings.Minutes(phase)) {
			seconds = int(math.Round(settings.Minutes(phase) * 60))
		}
		durations = durations.With(phase, seconds)
	}
	return durations
}

// ChangedPhases lists the phases whose minutes differ between two settings.
func (settings Settings) ChangedPhases(previous Settings) []model.Phase {
	var changed []model.Phase
	for _, phase := range model.Phases() {
		if settings.Minutes(phase) != previous.Minutes(phase) {
			changed = append(changed, phase)
		}
	}
	return changed
}

// ValidMinutes reports whether minutes can be stored as a phase length.
func ValidMinutes(minutes float64) bool {
	return !math.IsNaN(minutes) && !math.IsInf(minutes, 0) && minutes >= 0 && minutes*60 <= math.MaxInt32
}
