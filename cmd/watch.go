package main

import (
	"context"

	"pomodoro/internal/core/model"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"

	"github.com/spf13/cobra"
)

// durationSetter is the part of the runner a settings reload touches.
type durationSetter interface {
	SetDuration(phase model.Phase, minutes float64) error
}

// reload layers the flags over saved and pushes every phase whose minutes
// moved into timer. It returns the new effective settings.
func (sess *session) reload(cmd *cobra.Command, opts *options, saved preferences.Settings, timer durationSetter) preferences.Settings {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	settings, err := opts.apply(cmd, saved)
	if err != nil {
		sess.logger.Warn("settings reload rejected", "error", err)
		return sess.settings
	}
	for _, phase := range settings.ChangedPhases(sess.settings) {
		if err := timer.SetDuration(phase, settings.Minutes(phase)); err != nil {
			sess.logger.Warn("apply reloaded duration", "phase", phase, "error", err)
			continue
		}
		sess.logger.Info("duration reloaded", "phase", phase, "minutes", settings.Minutes(phase))
	}
	sess.saved = saved
	sess.settings = settings
	return settings
}

// watchSettings applies edits to the settings file while a screen is open.
// onReload runs on the watcher goroutine.
func watchSettings(ctx context.Context, cmd *cobra.Command, opts *options, sess *session, timer durationSetter, onReload func(preferences.Settings)) {
	err := storage.Watch(ctx, sess.path, sess.logger, func(saved preferences.Settings) {
		settings := sess.reload(cmd, opts, saved, timer)
		if onReload != nil {
			onReload(settings)
		}
	})
	if err != nil {
		sess.logger.Warn("settings file not watched", "path", sess.path, "error", err)
	}
}

func (sess *session) savedSettings() preferences.Settings {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.saved
}
