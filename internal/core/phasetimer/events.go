package phasetimer

import (
	"time"

	"pomodoro/internal/core/model"
)

// EventType defines the type of PhaseTimer event.
type EventType string

const (
	EventStateChange    EventType = "state_change"
	EventProgress       EventType = "progress"
	EventDurationChange EventType = "duration_change"
	EventSound          EventType = "sound"
)

// Event represents a PhaseTimer update for observers.
// Phase, Remaining and Running always describe the state after the change.
type Event struct {
	Type      EventType
	Phase     model.Phase
	Remaining int
	Running   bool
	// Duration is the edited phase length in seconds for EventDurationChange.
	Duration int
	Sound    model.Sound
	At       time.Time
}

// Snapshot is a consistent copy of the timer state.
type Snapshot struct {
	Phase     model.Phase
	Remaining int
	Running   bool
	Durations model.Durations
}

// RemainingDuration returns the countdown as a time.Duration.
func (snapshot Snapshot) RemainingDuration() time.Duration {
	return time.Duration(snapshot.Remaining) * time.Second
}

// Progress returns the elapsed fraction of the current phase in [0, 1].
func (snapshot Snapshot) Progress() float64 {
	total := snapshot.Durations.Of(snapshot.Phase)
	if total <= 0 {
		return 1
	}
	progress := float64(total-snapshot.Remaining) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}
