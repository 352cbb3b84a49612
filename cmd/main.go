package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const (
	appName = "Pomodoro"
	appID   = "com.pomodoro.app"
)

type options struct {
	configPath string
	logLevel   string
	minutes    map[model.Phase]*float64
	mute       bool
	tick       time.Duration
}

// session is the resolved configuration for one command run.
type session struct {
	mu   sync.Mutex
	path string
	// saved is what the settings file holds.
	saved preferences.Settings
	// settings is saved with flag overrides applied.
	settings preferences.Settings
	logger   *slog.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root, _ := newRoot()
	return root
}

func newRoot() (*cobra.Command, *options) {
	opts := &options{
		minutes: make(map[model.Phase]*float64, 3),
	}

	root := &cobra.Command{
		Use:   "pomodoro",
		Short: "Pomodoro timer",
		Long: `A pomodoro timer cycling Work, Short Break and Long Break phases.

Runs the desktop screen by default. Use "pomodoro tui" for the terminal
screen and "pomodoro config" to edit the saved defaults.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "settings file (default $UserConfigDir/pomodoro/settings.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	opts.minutes[model.PhaseWork] = flags.Float64("work", 0, "work minutes for this run")
	opts.minutes[model.PhaseShortBreak] = flags.Float64("short", 0, "short break minutes for this run")
	opts.minutes[model.PhaseLongBreak] = flags.Float64("long", 0, "long break minutes for this run")
	flags.BoolVar(&opts.mute, "mute", false, "disable sounds for this run")
	flags.DurationVar(&opts.tick, "tick", time.Second, "countdown tick interval")
	_ = flags.MarkHidden("tick")

	root.AddCommand(
		newGUICommand(opts),
		newTUICommand(opts),
		newConfigCommand(opts),
	)
	return root, opts
}

var flagNames = map[model.Phase]string{
	model.PhaseWork:       "work",
	model.PhaseShortBreak: "short",
	model.PhaseLongBreak:  "long",
}

// resolve loads the settings file and layers the flags of cmd on top.
func (opts *options) resolve(cmd *cobra.Command, logOutput io.Writer) (*session, error) {
	logger, err := newLogger(logOutput, opts.logLevel)
	if err != nil {
		return nil, err
	}
	if opts.tick <= 0 {
		return nil, fmt.Errorf("tick interval must be positive, got %s", opts.tick)
	}

	path := opts.configPath
	if path == "" {
		path, err = storage.DefaultPath("pomodoro")
		if err != nil {
			return nil, err
		}
	}

	saved, err := storage.LoadSettings(path)
	if err != nil {
		return nil, err
	}
	settings, err := opts.apply(cmd, saved)
	if err != nil {
		return nil, err
	}

	logger.Debug("settings resolved", "path", path, "durations", settings.Durations())
	return &session{
		path:     path,
		saved:    saved,
		settings: settings,
		logger:   logger,
	}, nil
}

// apply overrides settings with every flag set on the command line.
func (opts *options) apply(cmd *cobra.Command, settings preferences.Settings) (preferences.Settings, error) {
	flags := cmd.Flags()
	for _, phase := range model.Phases() {
		name := flagNames[phase]
		if !flags.Changed(name) {
			continue
		}
		minutes := *opts.minutes[phase]
		if !preferences.ValidMinutes(minutes) {
			return settings, fmt.Errorf("--%s: invalid minutes %v", name, minutes)
		}
		settings = settings.WithMinutes(phase, minutes)
	}
	if opts.mute {
		settings.SoundEnabled = false
	}
	return settings, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler).With("session", uuid.NewString()), nil
}
