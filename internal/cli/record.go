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

// AddRecordOptions holds flags for the add-record command.
type AddRecordOptions struct {
	*RootOptions
	Title       string
	Category    string
	Date        string
	Mileage     int
	Cost        float64
	Notes       string
	RemindDate  string
	RemindMiles int
	ReceiptPath string
}

// NewAddRecordCommand creates the add-record command.
func NewAddRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddRecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add-record <vehicle>",
		Short: "Log a service record against a vehicle",
		Long: `Log a service record against a vehicle, matched by ID or name.

An oil-change record given --remind-date gets a reminder scheduled at that
date. A record given --remind-miles raises an alert once the vehicle's
odometer reaches that reading.

Example:
  garage add-record "Weekend Cruiser" --title "Oil change" --category oil_change \
    --mileage 43000 --cost 59.99 --remind-date 2027-06-01 --remind-miles 48000`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAddRecord(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "record title (required)")
	cmd.Flags().StringVar(&opts.Category, "category", "other", "service category")
	cmd.Flags().StringVar(&opts.Date, "date", "", "service date as YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&opts.Mileage, "mileage", 0, "odometer reading at service time")
	cmd.Flags().Float64Var(&opts.Cost, "cost", 0, "cost in dollars")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&opts.RemindDate, "remind-date", "", "follow-up date as YYYY-MM-DD")
	cmd.Flags().IntVar(&opts.RemindMiles, "remind-miles", 0, "follow-up odometer reading")
	cmd.Flags().StringVar(&opts.ReceiptPath, "receipt", "", "path to a receipt to attach")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func runAddRecord(opts *AddRecordOptions, ref string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	category, err := model.ParseServiceCategory(opts.Category)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidArg, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid category", err)
	}

	date := time.Now()
	if opts.Date != "" {
		if date, err = time.Parse("2006-01-02", opts.Date); err != nil {
			_ = formatter.Error(ErrCodeInvalidArg, "invalid --date", err.Error())
			return WrapExitError(ExitCommandError, "invalid date", err)
		}
	}

	rem := model.Reminder{}
	if opts.RemindDate != "" {
		d, err := time.Parse("2006-01-02", opts.RemindDate)
		if err != nil {
			_ = formatter.Error(ErrCodeInvalidArg, "invalid --remind-date", err.Error())
			return WrapExitError(ExitCommandError, "invalid reminder date", err)
		}
		rem.Date = &d
	}
	if cmd.Flags().Changed("remind-miles") {
		rem.Mileage = &opts.RemindMiles
	}

	var receipt []byte
	attachment := ""
	if opts.ReceiptPath != "" {
		if receipt, err = os.ReadFile(opts.ReceiptPath); err != nil {
			_ = formatter.Error(ErrCodeInvalidArg, "cannot read receipt", err.Error())
			return WrapExitError(ExitCommandError, "cannot read receipt", err)
		}
		attachment = filepath.Base(opts.ReceiptPath)
	}

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

	rec := model.ServiceRecord{
		ID:             uuid.New(),
		Title:          opts.Title,
		Category:       category,
		Date:           date,
		Mileage:        opts.Mileage,
		Notes:          opts.Notes,
		Reminder:       rem,
		Receipt:        receipt,
		AttachmentName: attachment,
	}
	if cmd.Flags().Changed("cost") {
		rec.Cost = &opts.Cost
	}

	env.garage.AddRecord(rec, v.ID)
	env.reportSaveError(formatter)

	return formatter.SuccessText(
		fmt.Sprintf("Logged %q for %s (%s)", rec.Title, v.DisplayName(), rec.ID),
		recordSummary(rec),
	)
}

// NewDeleteRecordCommand creates the delete-record command.
func NewDeleteRecordCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "delete-record <vehicle> <record-id>",
		Short:         "Delete a service record",
		Long:          "Delete a service record and cancel its pending reminder, if any.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeleteRecord(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runDeleteRecord(opts *RootOptions, vehicleRef, recordRef string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	recordID, err := uuid.Parse(recordRef)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidArg, "invalid record id", err.Error())
		return WrapExitError(ExitCommandError, "invalid record id", err)
	}

	env, err := openEnv(opts)
	if err != nil {
		return err
	}
	defer env.close()

	v, ok := resolveVehicle(env.garage, vehicleRef)
	if !ok {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("no vehicle matching %q", vehicleRef), nil)
		return NewExitError(ExitFailure, "vehicle not found")
	}

	if env.garage.DeleteRecord(recordID, v.ID) == store.NotFound {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("no record %s on %s", recordID, v.DisplayName()), nil)
		return NewExitError(ExitFailure, "record not found")
	}
	env.reportSaveError(formatter)

	return formatter.SuccessText(
		fmt.Sprintf("Deleted record %s from %s", recordID, v.DisplayName()),
		map[string]string{"id": recordID.String(), "vehicle_id": v.ID.String()},
	)
}

// recordJSON is the JSON shape for service records.
type recordJSON struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	Date          string   `json:"date"`
	Mileage       int      `json:"mileage"`
	Cost          *float64 `json:"cost,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	ReminderDate  *string  `json:"reminder_date,omitempty"`
	ReminderMiles *int     `json:"reminder_miles,omitempty"`
	Attachment    string   `json:"attachment,omitempty"`
}

func recordSummary(rec model.ServiceRecord) recordJSON {
	out := recordJSON{
		ID:            rec.ID.String(),
		Title:         rec.Title,
		Category:      string(rec.Category),
		Date:          rec.Date.Format("2006-01-02"),
		Mileage:       rec.Mileage,
		Cost:          rec.Cost,
		Notes:         rec.Notes,
		ReminderMiles: rec.Reminder.Mileage,
		Attachment:    rec.AttachmentName,
	}
	if rec.Reminder.Date != nil {
		s := rec.Reminder.Date.Format("2006-01-02")
		out.ReminderDate = &s
	}
	return out
}
