package notify

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/raygarage/garage/internal/model"
)

// Alert is one row of the local alert queue.
type Alert struct {
	ID        string
	VehicleID string
	RecordID  string
	Title     string
	Body      string
	FireAt    time.Time
	CreatedAt time.Time
}

// Due reports whether the alert's fire time has arrived.
func (a Alert) Due(now time.Time) bool {
	return !a.FireAt.After(now)
}

// AlertLog is the on-device Gateway implementation: alerts are rows in the
// garage database rather than OS notification-center entries, which keeps
// the schedule/cancel-by-identifier contract intact on platforms without
// one. The `garage reminders` command reads this queue.
type AlertLog struct {
	db  *sql.DB
	log *zap.Logger
	now func() time.Time
}

// NewAlertLog creates an alert log over the given database connection,
// which must have the alerts table applied (store.Open does this).
func NewAlertLog(db *sql.DB, log *zap.Logger, now func() time.Time) *AlertLog {
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &AlertLog{db: db, log: log, now: now}
}

// RequestAuthorization is a no-op for the local queue; there is no OS
// permission to acquire.
func (a *AlertLog) RequestAuthorization() {
	a.log.Debug("alert log ready; no notification authorization required")
}

// ScheduleOilChangeReminder upserts the record's one-shot alert. Scheduling
// again under the same identifier replaces the previous fire time.
func (a *AlertLog) ScheduleOilChangeReminder(v model.Vehicle, rec model.ServiceRecord, fireAt time.Time) {
	id := OilChangeID(v.ID, rec.ID)
	body := fmt.Sprintf("Time for an oil change on %s", v.DisplayName())
	a.insert(id, v.ID, rec.ID, "Oil Change Reminder", body, fireAt)
}

// FireMileageReminder inserts an immediate alert. Each call gets a fresh
// identifier, so crossing a threshold repeatedly produces repeated alerts.
func (a *AlertLog) FireMileageReminder(v model.Vehicle, rec model.ServiceRecord) {
	id := fmt.Sprintf("mileage-%s-%s-%s", v.ID, rec.ID, uuid.NewString())
	body := fmt.Sprintf("%s is due for %s", v.DisplayName(), rec.Title)
	a.insert(id, v.ID, rec.ID, "Mileage Reminder", body, a.now())
}

// CancelReminder removes the record's scheduled alert, no-op if absent.
func (a *AlertLog) CancelReminder(vehicleID, recordID uuid.UUID) {
	if _, err := a.db.Exec(`DELETE FROM alerts WHERE id = ?`, OilChangeID(vehicleID, recordID)); err != nil {
		a.log.Error("cancel reminder", zap.String("vehicle_id", vehicleID.String()), zap.Error(err))
	}
}

// CancelAllReminders removes every alert whose identifier contains the
// vehicle ID. Identifiers are namespaced by embedding the vehicle ID, so a
// substring match is sufficient.
func (a *AlertLog) CancelAllReminders(vehicleID uuid.UUID) {
	if _, err := a.db.Exec(`DELETE FROM alerts WHERE instr(id, ?) > 0`, vehicleID.String()); err != nil {
		a.log.Error("cancel all reminders", zap.String("vehicle_id", vehicleID.String()), zap.Error(err))
	}
}

// Alerts returns the queue ordered by fire time. With dueOnly set, only
// alerts whose fire time has arrived are returned.
func (a *AlertLog) Alerts(now time.Time, dueOnly bool) ([]Alert, error) {
	query := `SELECT id, vehicle_id, record_id, title, body, fire_at, created_at FROM alerts`
	args := []any{}
	if dueOnly {
		query += ` WHERE fire_at <= ?`
		args = append(args, now.UTC().Format(time.RFC3339))
	}
	query += ` ORDER BY fire_at ASC, id ASC`

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []Alert
	for rows.Next() {
		var al Alert
		var fireAt, createdAt string
		if err := rows.Scan(&al.ID, &al.VehicleID, &al.RecordID, &al.Title, &al.Body, &fireAt, &createdAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		if al.FireAt, err = time.Parse(time.RFC3339, fireAt); err != nil {
			return nil, fmt.Errorf("parse fire_at: %w", err)
		}
		if al.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		alerts = append(alerts, al)
	}
	return alerts, rows.Err()
}

func (a *AlertLog) insert(id string, vehicleID, recordID uuid.UUID, title, body string, fireAt time.Time) {
	_, err := a.db.Exec(`
		INSERT INTO alerts (id, vehicle_id, record_id, title, body, fire_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, body = excluded.body, fire_at = excluded.fire_at
	`,
		id,
		vehicleID.String(),
		recordID.String(),
		title,
		body,
		fireAt.UTC().Format(time.RFC3339),
		a.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		a.log.Error("schedule alert",
			zap.String("id", id),
			zap.Time("fire_at", fireAt),
			zap.Error(err),
		)
		return
	}
	a.log.Debug("alert scheduled", zap.String("id", id), zap.Time("fire_at", fireAt))
}
