package audio

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/resources"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

var soundFiles = map[model.Sound]string{
	model.SoundClick: "click.wav",
	model.SoundEnd:   "end.wav",
}

// SpeakerPlayer plays the embedded WAV assets through the system speaker.
// The speaker is opened on first use; if that fails every later Play goes
// to the fallback player instead.
type SpeakerPlayer struct {
	logger   *slog.Logger
	fallback Player

	once    sync.Once
	initErr error
	buffers map[model.Sound]*beep.Buffer
}

// NewSpeakerPlayer creates a speaker-backed player. fallback may be nil.
func NewSpeakerPlayer(logger *slog.Logger, fallback Player) *SpeakerPlayer {
	if fallback == nil {
		fallback = Nop{}
	}
	return &SpeakerPlayer{logger: logger, fallback: fallback}
}

// Play queues sound on the speaker mixer and returns immediately.
func (player *SpeakerPlayer) Play(sound model.Sound) {
	if err := player.init(); err != nil {
		player.fallback.Play(sound)
		return
	}
	buffer, ok := player.buffers[sound]
	if !ok {
		player.logger.Debug("sound skipped", "error", fmt.Errorf("%w: %s", ErrUnknownSound, sound))
		return
	}
	speaker.Play(buffer.Streamer(0, buffer.Len()))
}

var errPlayerClosed = errors.New("speaker player closed")

// Close releases the speaker if it was opened. A player closed before its
// first Play never opens the speaker and sends later sounds to the fallback.
func (player *SpeakerPlayer) Close() {
	player.once.Do(func() {
		player.initErr = errPlayerClosed
	})
	if player.buffers != nil {
		speaker.Close()
	}
}

func (player *SpeakerPlayer) init() error {
	player.once.Do(func() {
		buffers, format, err := decodeSounds()
		if err != nil {
			player.initErr = err
			player.logger.Warn("sound assets unavailable", "error", err)
			return
		}
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			player.initErr = fmt.Errorf("init speaker: %w", err)
			player.logger.Warn("speaker unavailable, using fallback", "error", err)
			return
		}
		player.buffers = buffers
	})
	return player.initErr
}

// decodeSounds loads every asset into memory. All assets share one format.
func decodeSounds() (map[model.Sound]*beep.Buffer, beep.Format, error) {
	buffers := make(map[model.Sound]*beep.Buffer, len(soundFiles))
	var format beep.Format
	for sound, fileName := range soundFiles {
		data, err := resources.Sound(fileName)
		if err != nil {
			return nil, beep.Format{}, err
		}
		streamer, fileFormat, err := wav.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("decode %s: %w", fileName, err)
		}
		if format.SampleRate != 0 && fileFormat.SampleRate != format.SampleRate {
			_ = streamer.Close()
			return nil, beep.Format{}, fmt.Errorf("decode %s: sample rate %d differs from %d", fileName, fileFormat.SampleRate, format.SampleRate)
		}
		format = fileFormat

		buffer := beep.NewBuffer(fileFormat)
		buffer.Append(streamer)
		_ = streamer.Close()
		buffers[sound] = buffer
	}
	return buffers, format, nil
}
