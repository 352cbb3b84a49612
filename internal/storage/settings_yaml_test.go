package storage

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveAndLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	want := preferences.Settings{
		WorkMinutes:       50,
		ShortBreakMinutes: 0,
		LongBreakMinutes:  12.5,
		SoundEnabled:      false,
	}

	require.NoError(t, SaveSettings(path, want))
	got, err := LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "work_minutes: 50")
}

func TestSaveAndLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	want := preferences.Settings{
		WorkMinutes:       30,
		ShortBreakMinutes: 4,
		LongBreakMinutes:  20,
		SoundEnabled:      true,
	}

	require.NoError(t, SaveSettings(path, want))
	got, err := LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSettingsKeepsDefaultsForMissingAndInvalidKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("short_break_minutes: -2\nlong_break_minutes: 10\n"), 0o644))

	settings, err := LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, 25.0, settings.WorkMinutes)
	assert.Equal(t, 5.0, settings.ShortBreakMinutes)
	assert.Equal(t, 10.0, settings.LongBreakMinutes)
	assert.True(t, settings.SoundEnabled)
}

func TestLoadSettingsReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "settings.yaml")
	tomlPath := filepath.Join(dir, "settings.toml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("work_minutes: [oops"), 0o644))
	require.NoError(t, os.WriteFile(tomlPath, []byte("work_minutes = = 3"), 0o644))

	settings, err := LoadSettings(yamlPath)
	require.ErrorContains(t, err, "parse settings yaml")
	assert.Equal(t, preferences.DefaultSettings(), settings)

	_, err = LoadSettings(tomlPath)
	require.ErrorContains(t, err, "parse settings toml")
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, SaveSettings(path, preferences.DefaultSettings()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu     sync.Mutex
		latest *preferences.Settings
	)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, Watch(ctx, path, logger, func(settings preferences.Settings) {
		mu.Lock()
		defer mu.Unlock()
		latest = &settings
	}))

	updated := preferences.DefaultSettings().WithMinutes(model.PhaseShortBreak, 7)
	require.NoError(t, SaveSettings(path, updated))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return latest != nil && latest.ShortBreakMinutes == 7
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatchFailsForMissingDirectory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "settings.yaml"), logger, func(preferences.Settings) {})

	require.Error(t, err)
}
