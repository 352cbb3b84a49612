package phasetimer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"pomodoro/internal/core/model"
)

// ErrInvalidDuration indicates a duration input that is not a finite,
// non-negative number of minutes.
var ErrInvalidDuration = errors.New("invalid duration")

// maxDurationSeconds bounds a single phase so seconds always fit an int32.
const maxDurationSeconds = math.MaxInt32

// PhaseTimer is the pomodoro state machine. It never schedules itself;
// the owner calls Tick once per elapsed second while it is running.
type PhaseTimer struct {
	mu        sync.Mutex
	phase     model.Phase
	remaining int
	running   bool
	durations model.Durations
	events    []chan Event
	closed    bool
}

// New creates a stopped timer in the work phase.
func New(durations model.Durations) *PhaseTimer {
	durations = durations.Normalize()
	return &PhaseTimer{
		phase:     model.PhaseWork,
		remaining: durations.Of(model.PhaseWork),
		durations: durations,
	}
}

// Subscribe registers a new observer channel.
func (timer *PhaseTimer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.closed {
		close(ch)
		return ch
	}
	timer.events = append(timer.events, ch)
	return ch
}

// Close closes all observer channels. The timer state stays readable.
func (timer *PhaseTimer) Close() {
	timer.mu.Lock()
	if timer.closed {
		timer.mu.Unlock()
		return
	}
	timer.closed = true
	timer.running = false
	events := timer.events
	timer.events = nil
	timer.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Snapshot returns a copy of the current state.
func (timer *PhaseTimer) Snapshot() Snapshot {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.snapshotLocked()
}

// Running reports whether the countdown is active.
func (timer *PhaseTimer) Running() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.running
}

// Start begins the countdown and emits a click. It does nothing when the
// timer is already running.
func (timer *PhaseTimer) Start() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.running {
		return
	}
	timer.emitSoundLocked(model.SoundClick)
	timer.setRunningLocked(true)
}

// Stop pauses the countdown.
func (timer *PhaseTimer) Stop() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if !timer.running {
		return
	}
	timer.setRunningLocked(false)
}

// ToggleRunning emits a click and then flips the running flag.
func (timer *PhaseTimer) ToggleRunning() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.emitSoundLocked(model.SoundClick)
	timer.setRunningLocked(!timer.running)
}

// Tick advances the countdown by one second and rolls over to the next
// phase when it reaches zero. It reports whether the timer is still running.
func (timer *PhaseTimer) Tick() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if !timer.running {
		return false
	}

	timer.remaining--
	if timer.remaining > 0 {
		timer.emitLocked(timer.eventLocked(EventProgress))
		return true
	}

	timer.remaining = 0
	timer.emitSoundLocked(model.SoundEnd)
	timer.enterPhaseLocked(timer.phase.Next())
	return false
}

// SelectPhase switches to target, reloads its duration and stops the countdown.
func (timer *PhaseTimer) SelectPhase(target model.Phase) error {
	if !target.Valid() {
		return fmt.Errorf("select phase: %w: %q", model.ErrUnknownPhase, target)
	}
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.enterPhaseLocked(target)
	return nil
}

// SetDuration sets the length of target in minutes. Fractional minutes are
// rounded to the nearest second. Invalid input leaves the state unchanged.
//
// Editing the active phase while stopped resets the countdown to the new
// length. While running the countdown continues, clamped to the new length.
func (timer *PhaseTimer) SetDuration(target model.Phase, minutes float64) error {
	if !target.Valid() {
		return fmt.Errorf("set duration: %w: %q", model.ErrUnknownPhase, target)
	}
	seconds, err := minutesToSeconds(minutes)
	if err != nil {
		return err
	}

	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.durations = timer.durations.With(target, seconds)
	if target == timer.phase {
		if !timer.running || timer.remaining > seconds {
			timer.remaining = seconds
		}
	}

	event := timer.eventLocked(EventDurationChange)
	event.Phase = target
	event.Duration = seconds
	timer.emitLocked(event)
	return nil
}

// SetDurationText parses a minutes field and applies it with SetDuration.
func (timer *PhaseTimer) SetDurationText(target model.Phase, text string) error {
	minutes, err := ParseMinutes(text)
	if err != nil {
		return err
	}
	return timer.SetDuration(target, minutes)
}

// ParseMinutes parses user input for a minutes field. Blank input is
// rejected rather than read as zero, so clearing a field to retype it never
// applies a zero-length phase.
func ParseMinutes(text string) (float64, error) {
	value := strings.TrimSpace(text)
	if value == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidDuration)
	}
	minutes, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, text)
	}
	return minutes, nil
}

func minutesToSeconds(minutes float64) (int, error) {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes < 0 {
		return 0, fmt.Errorf("%w: %v minutes", ErrInvalidDuration, minutes)
	}
	seconds := math.Round(minutes * 60)
	if seconds > maxDurationSeconds {
		return 0, fmt.Errorf("%w: %v minutes is too long", ErrInvalidDuration, minutes)
	}
	return int(seconds), nil
}

func (timer *PhaseTimer) enterPhaseLocked(phase model.Phase) {
	timer.phase = phase
	timer.remaining = timer.durations.Of(phase)
	timer.running = false
	timer.emitLocked(timer.eventLocked(EventStateChange))
}

func (timer *PhaseTimer) setRunningLocked(running bool) {
	timer.running = running
	timer.emitLocked(timer.eventLocked(EventStateChange))
}

func (timer *PhaseTimer) emitSoundLocked(sound model.Sound) {
	event := timer.eventLocked(EventSound)
	event.Sound = sound
	timer.emitLocked(event)
}

func (timer *PhaseTimer) eventLocked(eventType EventType) Event {
	return Event{
		Type:      eventType,
		Phase:     timer.phase,
		Remaining: timer.remaining,
		Running:   timer.running,
		At:        time.Now(),
	}
}

func (timer *PhaseTimer) snapshotLocked() Snapshot {
	return Snapshot{
		Phase:     timer.phase,
		Remaining: timer.remaining,
		Running:   timer.running,
		Durations: timer.durations,
	}
}

func (timer *PhaseTimer) emitLocked(event Event) {
	for _, ch := range timer.events {
		select {
		case ch <- event:
		default:
		}
	}
}
