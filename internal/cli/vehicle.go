package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/raygarage/garage/internal/model"
	"github.com/raygarage/garage/internal/reminder"
	"github.com/raygarage/garage/internal/store"
)

// AddVehicleOptions holds flags for the add-vehicle command.
type AddVehicleOptions struct {
	*RootOptions
	Name      string
	Type      string
	Year      int
	Make      string
	Model     string
	Mileage   int
	Notes     string
	PhotoPath string
}

// NewAddVehicleCommand creates the add-vehicle command.
func NewAddVehicleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddVehicleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add-vehicle",
		Short: "Add a vehicle to the garage",
		Long: `Add a vehicle to the garage.

The display name defaults to "{year} {make} {model}" when --name is omitted.

Example:
  garage add-vehicle --year 2021 --make Toyota --model Tacoma --mileage 43210
  garage add-vehicle --name "Weekend Cruiser" --type boat --year 2018 --make "Sea Ray" --model "SPX 210"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAddVehicle(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "display name (optional)")
	cmd.Flags().StringVar(&opts.Type, "type", "car", "vehicle type (car|boat|motorcycle|other)")
	cmd.Flags().IntVar(&opts.Year, "year", 0, "model year (required)")
	cmd.Flags().StringVar(&opts.Make, "make", "", "manufacturer (required)")
	cmd.Flags().StringVar(&opts.Model, "model", "", "model (required)")
	cmd.Flags().IntVar(&opts.Mileage, "mileage", 0, "current odometer reading")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&opts.PhotoPath, "photo", "", "path to a photo to attach")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("make")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

func runAddVehicle(opts *AddVehicleOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	vtype, err := model.ParseVehicleType(opts.Type)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidArg, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid vehicle type", err)
	}

	var photo []byte
	if opts.PhotoPath != "" {
		if photo, err = os.ReadFile(opts.PhotoPath); err != nil {
			_ = formatter.Error(ErrCodeInvalidArg, "cannot read photo", err.Error())
			return WrapExitError(ExitCommandError, "cannot read photo", err)
		}
	}

	env, err := openEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.close()

	v := model.Vehicle{
		ID:             uuid.New(),
		Name:           opts.Name,
		Type:           vtype,
		Year:           opts.Year,
		Make:           opts.Make,
		Model:          opts.Model,
		CurrentMileage: opts.Mileage,
		Notes:          opts.Notes,
		Photo:          photo,
	}
	env.garage.AddVehicle(v)
	env.reportSaveError(formatter)

	return formatter.SuccessText(
		fmt.Sprintf("Added %s (%s)", v.DisplayName(), v.ID),
		vehicleSummary(v),
	)
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List all vehicles",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	env, err := openEnv(opts)
	if err != nil {
		return err
	}
	defer env.close()

	vehicles := env.garage.Vehicles()
	if opts.Format == "json" {
		summaries := make([]vehicleJSON, 0, len(vehicles))
		for _, v := range vehicles {
			summaries = append(summaries, vehicleSummary(v))
		}
		return formatter.Success(summaries)
	}

	for _, v := range vehicles {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s  %12s  %d records  (%s)\n",
			v.DisplayName(), v.Type.Label(), formatMiles(v.CurrentMileage), len(v.Records), v.ID)
	}
	return nil
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <vehicle>",
		Short: "Show one vehicle in detail",
		Long: `Show a vehicle's details, service history, tire and insurance status,
and the next scheduled oil change. The vehicle is matched by ID or by name.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runShow(opts *RootOptions, ref string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
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

	if opts.Format == "json" {
		return formatter.Success(vehicleDetail(v, env.now()))
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s\n", v.DisplayName())
	fmt.Fprintf(w, "  ID:       %s\n", v.ID)
	fmt.Fprintf(w, "  Type:     %s\n", v.Type.Label())
	fmt.Fprintf(w, "  Mileage:  %s\n", formatMiles(v.CurrentMileage))
	if v.Notes != "" {
		fmt.Fprintf(w, "  Notes:    %s\n", v.Notes)
	}
	if v.HasPhoto() {
		fmt.Fprintf(w, "  Photo:    %d bytes\n", len(v.Photo))
	}

	if rec, ok := v.LastOilChange(); ok {
		fmt.Fprintf(w, "  Last oil change: %s at %s\n", rec.Date.Format("2006-01-02"), formatMiles(rec.Mileage))
	}
	if rec, ok := reminder.NextOilChange(v, env.now()); ok && rec.Reminder.Date != nil {
		fmt.Fprintf(w, "  Next oil change: %s\n", rec.Reminder.Date.Format("2006-01-02"))
	}

	if t := v.Tires; t != nil {
		fmt.Fprintf(w, "  Tires:    %s\n", strings.TrimSpace(t.Brand+" "+t.Model))
		// The summary and wear percentages are computed differently and
		// disagree; both are shown, never reconciled.
		if pct, ok := t.RemainingLifePercentage(); ok {
			fmt.Fprintf(w, "            summary: %.0f%% life\n", pct)
		}
		if remaining, pct, ok := t.Wear(v.CurrentMileage); ok {
			fmt.Fprintf(w, "            wear: %s remaining (%.0f%%)\n", formatMiles(remaining), pct)
		}
	}
	if ins := v.Insurance; ins != nil {
		status := "active"
		switch {
		case ins.Expired(env.now()):
			status = "EXPIRED"
		case ins.ExpiringSoon(env.now()):
			status = "expiring soon"
		}
		fmt.Fprintf(w, "  Insurance: %s policy %s (%s)\n", ins.Company, ins.PolicyNumber, status)
	}

	if len(v.Records) > 0 {
		fmt.Fprintln(w, "  Records:")
		for _, rec := range v.Records {
			line := fmt.Sprintf("    %s  %-12s  %s", rec.Date.Format("2006-01-02"), rec.Category.Label(), rec.Title)
			if rec.Cost != nil {
				line += fmt.Sprintf("  $%.2f", *rec.Cost)
			}
			fmt.Fprintf(w, "%s  (%s)\n", line, rec.ID)
		}
	}
	return nil
}

// NewDeleteVehicleCommand creates the delete-vehicle command.
func NewDeleteVehicleCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "delete-vehicle <vehicle>",
		Short:         "Delete a vehicle and its records",
		Long:          "Delete a vehicle, its service records, and every pending reminder for it.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeleteVehicle(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runDeleteVehicle(opts *RootOptions, ref string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
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

	env.garage.DeleteVehicle(v.ID)
	env.reportSaveError(formatter)

	return formatter.SuccessText(
		fmt.Sprintf("Deleted %s (%s)", v.DisplayName(), v.ID),
		map[string]string{"id": v.ID.String(), "name": v.DisplayName()},
	)
}

// resolveVehicle matches ref against vehicle IDs first, then against
// display names case-insensitively. A name shared by several vehicles does
// not resolve.
func resolveVehicle(g *store.Garage, ref string) (model.Vehicle, bool) {
	if id, err := uuid.Parse(ref); err == nil {
		return g.Vehicle(id)
	}
	var found model.Vehicle
	matches := 0
	for _, v := range g.Vehicles() {
		if strings.EqualFold(v.DisplayName(), ref) {
			found = v
			matches++
		}
	}
	return found, matches == 1
}

// vehicleJSON is the JSON shape for vehicle summaries.
type vehicleJSON struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Year    int    `json:"year"`
	Make    string `json:"make"`
	Model   string `json:"model"`
	Mileage int    `json:"mileage"`
	Records int    `json:"records"`
}

func vehicleSummary(v model.Vehicle) vehicleJSON {
	return vehicleJSON{
		ID:      v.ID.String(),
		Name:    v.DisplayName(),
		Type:    string(v.Type),
		Year:    v.Year,
		Make:    v.Make,
		Model:   v.Model,
		Mileage: v.CurrentMileage,
		Records: len(v.Records),
	}
}

// vehicleDetailJSON adds history and status to the summary shape.
type vehicleDetailJSON struct {
	vehicleJSON
	Notes           string       `json:"notes,omitempty"`
	LastOilChange   *string      `json:"last_oil_change,omitempty"`
	NextOilChange   *string      `json:"next_oil_change,omitempty"`
	TiresSummary    *float64     `json:"tires_summary_percent,omitempty"`
	TiresRemaining  *int         `json:"tires_miles_remaining,omitempty"`
	TiresPercent    *float64     `json:"tires_percent_remaining,omitempty"`
	InsuranceStatus string       `json:"insurance_status,omitempty"`
	History         []recordJSON `json:"history"`
}

func vehicleDetail(v model.Vehicle, now time.Time) vehicleDetailJSON {
	d := vehicleDetailJSON{vehicleJSON: vehicleSummary(v), Notes: v.Notes}

	if rec, ok := v.LastOilChange(); ok {
		s := rec.Date.Format("2006-01-02")
		d.LastOilChange = &s
	}
	if rec, ok := reminder.NextOilChange(v, now); ok && rec.Reminder.Date != nil {
		s := rec.Reminder.Date.Format("2006-01-02")
		d.NextOilChange = &s
	}
	if v.Tires != nil {
		if pct, ok := v.Tires.RemainingLifePercentage(); ok {
			d.TiresSummary = &pct
		}
		if remaining, pct, ok := v.Tires.Wear(v.CurrentMileage); ok {
			d.TiresRemaining = &remaining
			d.TiresPercent = &pct
		}
	}
	if ins := v.Insurance; ins != nil {
		switch {
		case ins.Expired(now):
			d.InsuranceStatus = "expired"
		case ins.ExpiringSoon(now):
			d.InsuranceStatus = "expiring_soon"
		default:
			d.InsuranceStatus = "active"
		}
	}
	d.History = make([]recordJSON, 0, len(v.Records))
	for _, rec := range v.Records {
		d.History = append(d.History, recordSummary(rec))
	}
	return d
}
