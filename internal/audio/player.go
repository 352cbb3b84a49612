// Package audio turns timer sound events into playback.
package audio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/phasetimer"
)

// ErrUnknownSound indicates a sound without a matching asset.
var ErrUnknownSound = errors.New("unknown sound")

// Player plays a sound. Implementations must not report failures to the caller.
type Player interface {
	Play(sound model.Sound)
}

// PlayerFunc adapts a function to Player.
type PlayerFunc func(model.Sound)

// Play calls fn(sound).
func (fn PlayerFunc) Play(sound model.Sound) {
	fn(sound)
}

// Nop discards every sound.
type Nop struct{}

// Play does nothing.
func (Nop) Play(model.Sound) {}

// Bell rings the terminal bell.
type Bell struct {
	Writer io.Writer
}

// Play writes BEL once for a click and twice for a phase end.
func (bell Bell) Play(sound model.Sound) {
	if bell.Writer == nil {
		return
	}
	switch sound {
	case model.SoundClick:
		_, _ = io.WriteString(bell.Writer, "\a")
	case model.SoundEnd:
		_, _ = io.WriteString(bell.Writer, "\a\a")
	}
}

type asyncPlayer struct {
	player Player
	logger *slog.Logger
}

// Async runs each Play on its own goroutine and recovers panics.
func Async(player Player, logger *slog.Logger) Player {
	return &asyncPlayer{player: player, logger: logger}
}

func (async *asyncPlayer) Play(sound model.Sound) {
	go func() {
		defer func() {
			if recovered := recover(); recovered != nil {
				async.logger.Warn("sound playback panicked", "sound", sound, "error", fmt.Sprint(recovered))
			}
		}()
		async.player.Play(sound)
	}()
}

// Forward plays every sound event received on events until the channel is
// closed. Other event types are ignored.
func Forward(events <-chan phasetimer.Event, player Player) {
	for event := range events {
		if event.Type == phasetimer.EventSound {
			player.Play(event.Sound)
		}
	}
}
