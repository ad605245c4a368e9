// Package notify defines the notification gateway the garage store talks to
// and a local, SQLite-backed implementation of it.
//
// Every gateway call is fire-and-forget: the store's mutations never block
// on, roll back for, or learn about a scheduling failure. Implementations
// log failures and move on.
package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/raygarage/garage/internal/model"
)

// Gateway schedules and cancels local alerts by identifier and fire time.
type Gateway interface {
	// RequestAuthorization asks for permission to alert the user. Called
	// once at store startup; scheduling is attempted regardless of grant.
	RequestAuthorization()

	// ScheduleOilChangeReminder schedules a one-shot alert at fireAt,
	// titled with the vehicle's display name and identified by
	// OilChangeID so it can later be cancelled.
	ScheduleOilChangeReminder(v model.Vehicle, rec model.ServiceRecord, fireAt time.Time)

	// FireMileageReminder raises an immediate alert for a record whose
	// mileage threshold the vehicle has just met or exceeded.
	FireMileageReminder(v model.Vehicle, rec model.ServiceRecord)

	// CancelReminder cancels the alert for a record, no-op if absent.
	CancelReminder(vehicleID, recordID uuid.UUID)

	// CancelAllReminders cancels every pending alert whose identifier
	// contains the vehicle ID.
	CancelAllReminders(vehicleID uuid.UUID)
}

// OilChangeID is the identifier an oil-change alert is scheduled and
// cancelled under. It embeds the vehicle ID so CancelAllReminders can match
// by substring.
func OilChangeID(vehicleID, recordID uuid.UUID) string {
	return fmt.Sprintf("oilChange-%s-%s", vehicleID, recordID)
}
