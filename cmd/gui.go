package main

import (
	"context"
	"errors"
	"os"
	"sync/atomic"

	"pomodoro/internal/audio"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/phasetimer"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/screen"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"
)

func newGUICommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop timer screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, opts)
		},
	}
}

func runGUI(cmd *cobra.Command, opts *options) error {
	sess, err := opts.resolve(cmd, os.Stderr)
	if err != nil {
		return err
	}
	logger := sess.logger.With("screen", "gui")

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("another timer is open", "error", err)
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.AppIcon))

	runner := phasetimer.NewRunner(phasetimer.New(sess.settings.Durations()), phasetimer.Config{TickInterval: opts.tick})
	defer runner.Close()

	speakerPlayer := audio.NewSpeakerPlayer(logger, nil)
	defer speakerPlayer.Close()
	player, soundOn := switchablePlayer(audio.Async(speakerPlayer, logger), sess.settings.SoundEnabled)
	go audio.Forward(runner.Subscribe(8), player)

	var prefsWindow *preferences.Window
	mainScreen := screen.New(fyneApp, runner, screen.Config{
		Title:  "Pomodoro Timer",
		Logger: logger,
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnClosed: fyneApp.Quit,
	})

	prefsWindow = preferences.New(fyneApp, sess.saved, func(saved preferences.Settings) {
		if err := storage.SaveSettings(sess.path, saved); err != nil {
			logger.Error("save settings", "path", sess.path, "error", err)
			return
		}
		settings := sess.reload(cmd, opts, saved, runner)
		soundOn.Store(settings.SoundEnabled)
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		desktopApp.SetSystemTrayIcon(resources.MustLogo(resources.AppIcon))
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:   mainScreen.Show,
			OnToggle: runner.Toggle,
			OnSelectPhase: func(phase model.Phase) {
				if err := runner.SelectPhase(phase); err != nil {
					logger.Error("select phase", "phase", phase, "error", err)
				}
			},
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		trayManager.Update(runner.Snapshot())
		mainScreen.HideOnClose()
	} else {
		logger.Debug("system tray unsupported on this platform")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	watchSettings(ctx, cmd, opts, sess, runner, func(settings preferences.Settings) {
		soundOn.Store(settings.SoundEnabled)
		saved := sess.savedSettings()
		fyne.Do(func() {
			prefsWindow.UpdateSettings(saved)
		})
	})

	go mainScreen.Listen(runner.Subscribe(8))
	if trayManager != nil {
		events := runner.Subscribe(8)
		go func() {
			for event := range events {
				if event.Type == phasetimer.EventSound {
					continue
				}
				fyne.Do(func() {
					trayManager.Update(runner.Snapshot())
				})
			}
		}()
	}

	logger.Info("timer ready", "durations", sess.settings.Durations())
	mainScreen.Show()
	fyneApp.Run()
	return nil
}

// switchablePlayer gates player behind a flag that settings reloads flip.
func switchablePlayer(player audio.Player, enabled bool) (audio.Player, *atomic.Bool) {
	soundOn := &atomic.Bool{}
	soundOn.Store(enabled)
	return audio.PlayerFunc(func(sound model.Sound) {
		if soundOn.Load() {
			player.Play(sound)
		}
	}), soundOn
}
