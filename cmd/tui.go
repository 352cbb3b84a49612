package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"pomodoro/internal/audio"
	"pomodoro/internal/core/phasetimer"
	"pomodoro/internal/platform"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/terminal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newTUICommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in the terminal",
		Long: `Run the timer in the terminal.

Keys:
  space     Start/stop
  1/2/3     Pomodoro, Short Break, Long Break
  tab       Edit minutes (esc to finish)
  q         Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *options) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errors.New("tui needs an interactive terminal")
	}

	sess, err := opts.resolve(cmd, tuiLogOutput())
	if err != nil {
		return err
	}
	logger := sess.logger.With("screen", "tui")

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	runner := phasetimer.NewRunner(phasetimer.New(sess.settings.Durations()), phasetimer.Config{TickInterval: opts.tick})
	defer runner.Close()

	speakerPlayer := audio.NewSpeakerPlayer(logger, audio.Bell{Writer: os.Stderr})
	defer speakerPlayer.Close()
	player, soundOn := switchablePlayer(audio.Async(speakerPlayer, logger), sess.settings.SoundEnabled)
	go audio.Forward(runner.Subscribe(8), player)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	watchSettings(ctx, cmd, opts, sess, runner, func(settings preferences.Settings) {
		soundOn.Store(settings.SoundEnabled)
	})

	screen := terminal.New(runner, runner.Subscribe(16), logger)
	program := tea.NewProgram(screen, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal screen: %w", err)
	}
	return nil
}

// tuiLogOutput keeps log lines off the screen unless stderr is redirected.
func tuiLogOutput() io.Writer {
	if isTerminal(os.Stderr) {
		return io.Discard
	}
	return os.Stderr
}

func isTerminal(file *os.File) bool {
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
