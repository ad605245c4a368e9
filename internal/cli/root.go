package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	DBPath  string // overrides the configured database path when set
	Config  string // overrides the default config file location when set
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the garage CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "garage",
		Short: "Garage - vehicle maintenance tracker",
		Long:  "Track vehicles, service records, and maintenance reminders in a local database.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to the garage database (default from config)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "path to the config file")

	// Add subcommands
	cmd.AddCommand(NewAddVehicleCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewEditVehicleCommand(opts))
	cmd.AddCommand(NewDeleteVehicleCommand(opts))
	cmd.AddCommand(NewAddRecordCommand(opts))
	cmd.AddCommand(NewUpdateRecordCommand(opts))
	cmd.AddCommand(NewDeleteRecordCommand(opts))
	cmd.AddCommand(NewSetMileageCommand(opts))
	cmd.AddCommand(NewRemindersCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
