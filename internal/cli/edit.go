package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/raygarage/garage/internal/model"
	"github.com/raygarage/garage/internal/store"
)

// EditVehicleOptions holds flags for the edit-vehicle command.
type EditVehicleOptions struct {
	*RootOptions
	Name      string
	Type      string
	Year      int
	Make      string
	Model     string
	Notes     string
	PhotoPath string

	TireBrand     string
	TireModel     string
	TireDate      string
	TireMiles     int
	TireLifeMiles int
	TireNotes     string

	InsCompany string
	InsPolicy  string
	InsExpires string
	InsPhone   string
	InsNotes   string
}

// NewEditVehicleCommand creates the edit-vehicle command.
func NewEditVehicleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditVehicleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit-vehicle <vehicle>",
		Short: "Edit a vehicle's details, tires, or insurance",
		Long: `Edit a vehicle, matched by ID or name. Only the given flags change;
everything else is preserved. The odometer is not edited here; use
set-mileage, which also evaluates mileage reminders.

Example:
  garage edit-vehicle "Weekend Cruiser" --name "The Boat" --notes "Winterized"
  garage edit-vehicle "The Boat" --tire-brand Michelin --tire-installed-miles 100 --tire-life-miles 400
  garage edit-vehicle "The Boat" --insurance-company "State Farm" --insurance-expires 2027-01-15`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditVehicle(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "display name")
	cmd.Flags().StringVar(&opts.Type, "type", "", "vehicle type (car|boat|motorcycle|other)")
	cmd.Flags().IntVar(&opts.Year, "year", 0, "model year")
	cmd.Flags().StringVar(&opts.Make, "make", "", "manufacturer")
	cmd.Flags().StringVar(&opts.Model, "model", "", "model")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&opts.PhotoPath, "photo", "", "path to a photo to attach")

	cmd.Flags().StringVar(&opts.TireBrand, "tire-brand", "", "tire brand")
	cmd.Flags().StringVar(&opts.TireModel, "tire-model", "", "tire model")
	cmd.Flags().StringVar(&opts.TireDate, "tire-installed-date", "", "tire install date as YYYY-MM-DD")
	cmd.Flags().IntVar(&opts.TireMiles, "tire-installed-miles", 0, "odometer reading at tire install")
	cmd.Flags().IntVar(&opts.TireLifeMiles, "tire-life-miles", 0, "expected tire life in miles")
	cmd.Flags().StringVar(&opts.TireNotes, "tire-notes", "", "tire notes")

	cmd.Flags().StringVar(&opts.InsCompany, "insurance-company", "", "insurance company")
	cmd.Flags().StringVar(&opts.InsPolicy, "insurance-policy", "", "policy number")
	cmd.Flags().StringVar(&opts.InsExpires, "insurance-expires", "", "policy expiration as YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.InsPhone, "insurance-phone", "", "insurance phone number")
	cmd.Flags().StringVar(&opts.InsNotes, "insurance-notes", "", "insurance notes")

	return cmd
}

func runEditVehicle(opts *EditVehicleOptions, ref string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	flags := cmd.Flags()

	env, err := openEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.close()

	v, ok := resolveVehicle(env.garage, ref)
	if !ok {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("no vehicle matching %q", ref), nil)
		return NewExitError(ExitFailure, "vehicle not found")
	}

	if flags.Changed("name") {
		v.Name = opts.Name
	}
	if flags.Changed("type") {
		vtype, err := model.ParseVehicleType(opts.Type)
		if err != nil {
			_ = formatter.Error(ErrCodeInvalidArg, err.Error(), nil)
			return WrapExitError(ExitCommandError, "invalid vehicle type", err)
		}
		v.Type = vtype
	}
	if flags.Changed("year") {
		v.Year = opts.Year
	}
	if flags.Changed("make") {
		v.Make = opts.Make
	}
	if flags.Changed("model") {
		v.Model = opts.Model
	}
	if flags.Changed("notes") {
		v.Notes = opts.Notes
	}
	if flags.Changed("photo") {
		photo, err := os.ReadFile(opts.PhotoPath)
		if err != nil {
			_ = formatter.Error(ErrCodeInvalidArg, "cannot read photo", err.Error())
			return WrapExitError(ExitCommandError, "cannot read photo", err)
		}
		v.Photo = photo
	}

	tires := func() *model.TireInfo {
		if v.Tires == nil {
			v.Tires = &model.TireInfo{}
		}
		return v.Tires
	}
	if flags.Changed("tire-brand") {
		tires().Brand = opts.TireBrand
	}
	if flags.Changed("tire-model") {
		tires().Model = opts.TireModel
	}
	if flags.Changed("tire-installed-date") {
		d, err := time.Parse("2006-01-02", opts.TireDate)
		if err != nil {
			_ = formatter.Error(ErrCodeInvalidArg, "invalid --tire-installed-date", err.Error())
			return WrapExitError(ExitCommandError, "invalid tire install date", err)
		}
		tires().InstalledDate = &d
	}
	if flags.Changed("tire-installed-miles") {
		tires().InstalledMileage = &opts.TireMiles
	}
	if flags.Changed("tire-life-miles") {
		tires().ExpectedLifeMiles = &opts.TireLifeMiles
	}
	if flags.Changed("tire-notes") {
		tires().Notes = opts.TireNotes
	}

	insurance := func() *model.InsuranceInfo {
		if v.Insurance == nil {
			v.Insurance = &model.InsuranceInfo{}
		}
		return v.Insurance
	}
	if flags.Changed("insurance-company") {
		insurance().Company = opts.InsCompany
	}
	if flags.Changed("insurance-policy") {
		insurance().PolicyNumber = opts.InsPolicy
	}
	if flags.Changed("insurance-expires") {
		d, err := time.Parse("2006-01-02", opts.InsExpires)
		if err != nil {
			_ = formatter.Error(ErrCodeInvalidArg, "invalid --insurance-expires", err.Error())
			return WrapExitError(ExitCommandError, "invalid insurance expiration", err)
		}
		insurance().ExpirationDate = &d
	}
	if flags.Changed("insurance-phone") {
		insurance().Phone = opts.InsPhone
	}
	if flags.Changed("insurance-notes") {
		insurance().Notes = opts.InsNotes
	}

	env.garage.UpdateVehicle(v)
	env.reportSaveError(formatter)

	return formatter.SuccessText(
		fmt.Sprintf("Updated %s (%s)", v.DisplayName(), v.ID),
		vehicleSummary(v),
	)
}

// UpdateRecordOptions holds flags for the update-record command.
type UpdateRecordOptions struct {
	*RootOptions
	Title         string
	Category      string
	Date          string
	Mileage       int
	Cost          float64
	Notes         string
	RemindDate    string
	RemindMiles   int
	ClearReminder bool
	ReceiptPath   string
}

// NewUpdateRecordCommand creates the update-record command.
func NewUpdateRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateRecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update-record <vehicle> <record-id>",
		Short: "Edit a service record",
		Long: `Edit a service record in place. Only the given flags change. The
record's pending reminder is cancelled and re-scheduled from the updated
fields; --clear-reminder drops both triggers instead.

Example:
  garage update-record "Weekend Cruiser" 1f2e3d4c-5b6a-4978-8877-665544332211 \
    --cost 89.50 --remind-date 2027-09-01`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdateRecord(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "record title")
	cmd.Flags().StringVar(&opts.Category, "category", "", "service category")
	cmd.Flags().StringVar(&opts.Date, "date", "", "service date as YYYY-MM-DD")
	cmd.Flags().IntVar(&opts.Mileage, "mileage", 0, "odometer reading at service time")
	cmd.Flags().Float64Var(&opts.Cost, "cost", 0, "cost in dollars")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&opts.RemindDate, "remind-date", "", "follow-up date as YYYY-MM-DD")
	cmd.Flags().IntVar(&opts.RemindMiles, "remind-miles", 0, "follow-up odometer reading")
	cmd.Flags().BoolVar(&opts.ClearReminder, "clear-reminder", false, "drop the record's reminder")
	cmd.Flags().StringVar(&opts.ReceiptPath, "receipt", "", "path to a receipt to attach")

	return cmd
}

func runUpdateRecord(opts *UpdateRecordOptions, vehicleRef, recordRef string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	flags := cmd.Flags()

	recordID, err := uuid.Parse(recordRef)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidArg, "invalid record id", err.Error())
		return WrapExitError(ExitCommandError, "invalid record id", err)
	}

	env, err := openEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.close()

	v, ok := resolveVehicle(env.garage, vehicleRef)
	if !ok {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("no vehicle matching %q", vehicleRef), nil)
		return NewExitError(ExitFailure, "vehicle not found")
	}
	rec, ok := v.Record(recordID)
	if !ok {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("no record %s on %s", recordID, v.DisplayName()), nil)
		return NewExitError(ExitFailure, "record not found")
	}

	if flags.Changed("title") {
		rec.Title = opts.Title
	}
	if flags.Changed("category") {
		category, err := model.ParseServiceCategory(opts.Category)
		if err != nil {
			_ = formatter.Error(ErrCodeInvalidArg, err.Error(), nil)
			return WrapExitError(ExitCommandError, "invalid category", err)
		}
		rec.Category = category
	}
	if flags.Changed("date") {
		d, err := time.Parse("2006-01-02", opts.Date)
		if err != nil {
			_ = formatter.Error(ErrCodeInvalidArg, "invalid --date", err.Error())
			return WrapExitError(ExitCommandError, "invalid date", err)
		}
		rec.Date = d
	}
	if flags.Changed("mileage") {
		rec.Mileage = opts.Mileage
	}
	if flags.Changed("cost") {
		rec.Cost = &opts.Cost
	}
	if flags.Changed("notes") {
		rec.Notes = opts.Notes
	}
	if opts.ClearReminder {
		rec.Reminder = model.Reminder{}
	}
	if flags.Changed("remind-date") {
		d, err := time.Parse("2006-01-02", opts.RemindDate)
		if err != nil {
			_ = formatter.Error(ErrCodeInvalidArg, "invalid --remind-date", err.Error())
			return WrapExitError(ExitCommandError, "invalid reminder date", err)
		}
		rec.Reminder.Date = &d
	}
	if flags.Changed("remind-miles") {
		rec.Reminder.Mileage = &opts.RemindMiles
	}
	if flags.Changed("receipt") {
		receipt, err := os.ReadFile(opts.ReceiptPath)
		if err != nil {
			_ = formatter.Error(ErrCodeInvalidArg, "cannot read receipt", err.Error())
			return WrapExitError(ExitCommandError, "cannot read receipt", err)
		}
		rec.Receipt = receipt
		rec.AttachmentName = filepath.Base(opts.ReceiptPath)
	}

	if env.garage.UpdateRecord(rec, v.ID) == store.NotFound {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("no record %s on %s", recordID, v.DisplayName()), nil)
		return NewExitError(ExitFailure, "record not found")
	}
	env.reportSaveError(formatter)

	return formatter.SuccessText(
		fmt.Sprintf("Updated %q on %s", rec.Title, v.DisplayName()),
		recordSummary(rec),
	)
}
