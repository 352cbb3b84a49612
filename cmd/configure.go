package main

import (
	"errors"
	"fmt"
	"os"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/phasetimer"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/format"
	"pomodoro/internal/ui/preferences"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newConfigCommand(opts *options) *cobra.Command {
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Edit the saved default minutes and sound setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.resolve(cmd, os.Stderr)
			if err != nil {
				return err
			}
			if printOnly {
				data, err := storage.EncodeSettings(sess.settings, false)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if !isTerminal(os.Stdin) {
				return errors.New("config needs an interactive terminal; use --print to show settings")
			}
			return editSettings(cmd, sess, (*huh.Form).Run)
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "print the effective settings as YAML and exit")
	return cmd
}

// editSettings prefills the form from the file, so run-only flags such as
// --work are never saved as defaults.
func editSettings(cmd *cobra.Command, sess *session, runForm func(*huh.Form) error) error {
	values := newFormValues(sess.saved)
	if err := runForm(settingsForm(values)); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled, nothing saved.")
			return nil
		}
		return err
	}

	settings, err := values.apply(sess.saved)
	if err != nil {
		return err
	}
	if err := storage.SaveSettings(sess.path, settings); err != nil {
		return err
	}
	sess.logger.Info("settings saved", "path", sess.path)
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", sess.path)
	return nil
}

// formValues is the editable text of the settings form.
type formValues struct {
	minutes map[model.Phase]*string
	sound   bool
}

func newFormValues(settings preferences.Settings) *formValues {
	values := &formValues{
		minutes: make(map[model.Phase]*string, 3),
		sound:   settings.SoundEnabled,
	}
	durations := settings.Durations()
	for _, phase := range model.Phases() {
		text := format.Minutes(durations.Of(phase))
		values.minutes[phase] = &text
	}
	return values
}

func (values *formValues) apply(settings preferences.Settings) (preferences.Settings, error) {
	for _, phase := range model.Phases() {
		minutes, err := parseFormMinutes(*values.minutes[phase])
		if err != nil {
			return settings, fmt.Errorf("%s: %w", phase.Label(), err)
		}
		settings = settings.WithMinutes(phase, minutes)
	}
	settings.SoundEnabled = values.sound
	return settings, nil
}

func settingsForm(values *formValues) *huh.Form {
	fields := make([]huh.Field, 0, 4)
	for _, phase := range model.Phases() {
		fields = append(fields, huh.NewInput().
			Title(phase.FieldLabel()).
			Placeholder(format.Minutes(model.DefaultDurations().Of(phase))).
			Value(values.minutes[phase]).
			Validate(validateMinutes))
	}
	fields = append(fields, huh.NewConfirm().
		Title("Play sounds?").
		Affirmative("Yes").
		Negative("No").
		Value(&values.sound))

	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true)
}

func validateMinutes(text string) error {
	_, err := parseFormMinutes(text)
	return err
}

func parseFormMinutes(text string) (float64, error) {
	minutes, err := phasetimer.ParseMinutes(text)
	if err != nil {
		return 0, err
	}
	if !preferences.ValidMinutes(minutes) {
		return 0, fmt.Errorf("%w: %q", phasetimer.ErrInvalidDuration, text)
	}
	return minutes, nil
}
