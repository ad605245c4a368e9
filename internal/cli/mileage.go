package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewSetMileageCommand creates the set-mileage command.
func NewSetMileageCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-mileage <vehicle> <miles>",
		Short: "Update a vehicle's odometer reading",
		Long: `Update a vehicle's odometer reading.

Every record whose mileage reminder is at or below the new reading raises
an alert, every time the reading is updated. The odometer may be set
backward; no monotonicity is enforced.

Example:
  garage set-mileage "Weekend Cruiser" 48500`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetMileage(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runSetMileage(opts *RootOptions, ref, milesArg string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	miles, err := strconv.Atoi(milesArg)
	if err != nil || miles < 0 {
		_ = formatter.Error(ErrCodeInvalidArg, fmt.Sprintf("invalid mileage %q", milesArg), nil)
		return NewExitError(ExitCommandError, "invalid mileage")
	}

	env, err := openEnv(opts)
	if err != nil {
		return err
	}
	defer env.close()

	v, ok := resolveVehicle(env.garage, ref)
	if !ok {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("no vehicle matching %q", ref), nil)
		return NewExitError(ExitFailure, "vehicle not found")
	}

	env.garage.UpdateMileage(miles, v.ID)
	env.reportSaveError(formatter)

	return formatter.SuccessText(
		fmt.Sprintf("%s is now at %s", v.DisplayName(), formatMiles(miles)),
		map[string]any{"id": v.ID.String(), "mileage": miles},
	)
}
