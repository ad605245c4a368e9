package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RemindersOptions holds flags for the reminders command.
type RemindersOptions struct {
	*RootOptions
	DueOnly bool
}

// NewRemindersCommand creates the reminders command.
func NewRemindersCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RemindersOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "List queued maintenance alerts",
		Long: `List the alert queue: scheduled oil-change reminders and mileage
alerts that have fired. With --due, only alerts whose fire time has
arrived are shown.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReminders(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.DueOnly, "due", false, "only alerts whose fire time has arrived")

	return cmd
}

func runReminders(opts *RemindersOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	env, err := openEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.close()

	alerts, err := env.alerts.Alerts(env.now(), opts.DueOnly)
	if err != nil {
		_ = formatter.Error(ErrCodeStorage, "cannot read alert queue", err.Error())
		return WrapExitError(ExitCommandError, "cannot read alert queue", err)
	}

	if opts.Format == "json" {
		type alertJSON struct {
			ID     string `json:"id"`
			Title  string `json:"title"`
			Body   string `json:"body"`
			FireAt string `json:"fire_at"`
			Due    bool   `json:"due"`
		}
		out := make([]alertJSON, 0, len(alerts))
		for _, a := range alerts {
			out = append(out, alertJSON{
				ID:     a.ID,
				Title:  a.Title,
				Body:   a.Body,
				FireAt: a.FireAt.Format("2006-01-02 15:04"),
				Due:    a.Due(env.now()),
			})
		}
		return formatter.Success(out)
	}

	if len(alerts) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No reminders queued.")
		return nil
	}
	for _, a := range alerts {
		marker := " "
		if a.Due(env.now()) {
			marker = "!"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s: %s\n",
			marker, a.FireAt.Format("2006-01-02"), a.Title, a.Body)
	}
	return nil
}
