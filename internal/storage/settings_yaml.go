package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/preferences"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type fileSettings struct {
	WorkMinutes       *float64 `yaml:"work_minutes,omitempty" toml:"work_minutes"`
	ShortBreakMinutes *float64 `yaml:"short_break_minutes,omitempty" toml:"short_break_minutes"`
	LongBreakMinutes  *float64 `yaml:"long_break_minutes,omitempty" toml:"long_break_minutes"`
	SoundEnabled      *bool    `yaml:"sound_enabled,omitempty" toml:"sound_enabled"`
}

// DefaultPath returns the settings file location under the user config dir.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads preferences from path. Files ending in .toml are parsed
// as TOML, anything else as YAML. A missing file yields the defaults.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData fileSettings
	if isTOML(path) {
		if err := toml.Unmarshal(rawData, &fileData); err != nil {
			return settings, fmt.Errorf("parse settings toml: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(rawData, &fileData); err != nil {
			return settings, fmt.Errorf("parse settings yaml: %w", err)
		}
	}

	applyFileSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes preferences to path, creating parent directories.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := EncodeSettings(settings, isTOML(path))
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

// EncodeSettings serializes settings as YAML, or TOML when asTOML is set.
func EncodeSettings(settings preferences.Settings, asTOML bool) ([]byte, error) {
	fileData := fileSettings{
		WorkMinutes:       &settings.WorkMinutes,
		ShortBreakMinutes: &settings.ShortBreakMinutes,
		LongBreakMinutes:  &settings.LongBreakMinutes,
		SoundEnabled:      &settings.SoundEnabled,
	}

	if asTOML {
		var buffer bytes.Buffer
		if err := toml.NewEncoder(&buffer).Encode(fileData); err != nil {
			return nil, fmt.Errorf("marshal settings toml: %w", err)
		}
		return buffer.Bytes(), nil
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return nil, fmt.Errorf("marshal settings yaml: %w", err)
	}
	return serialized, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func applyFileSettings(settings *preferences.Settings, fileData fileSettings) {
	minutes := map[model.Phase]*float64{
		model.PhaseWork:       fileData.WorkMinutes,
		model.PhaseShortBreak: fileData.ShortBreakMinutes,
		model.PhaseLongBreak:  fileData.LongBreakMinutes,
	}
	for phase, value := range minutes {
		if value != nil && preferences.ValidMinutes(*value) {
			*settings = settings.WithMinutes(phase, *value)
		}
	}

	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
}
