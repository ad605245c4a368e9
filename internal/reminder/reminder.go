// Package reminder derives reminder state from service records and the
// vehicle's current odometer/date. All functions are stateless and pure.
//
// Date-based due-ness is deliberately absent: once a reminder is scheduled
// with the notification gateway, its fire time is the gateway's to honor.
// Only mileage thresholds are evaluated here, because the odometer is
// application state the platform cannot watch on its own.
package reminder

import (
	"time"

	"github.com/raygarage/garage/internal/model"
)

// IsPending reports whether a record's reminder is still waiting to trigger:
// the reminder date is strictly in the future, or the reminder mileage is
// strictly above the vehicle's current mileage. A record with neither
// trigger set is never pending.
func IsPending(rec model.ServiceRecord, now time.Time, currentMileage int) bool {
	if d := rec.Reminder.Date; d != nil && d.After(now) {
		return true
	}
	if m := rec.Reminder.Mileage; m != nil && *m > currentMileage {
		return true
	}
	return false
}

// IsDue reports whether a record's mileage threshold has been met or
// exceeded. Records without a mileage trigger are never due here.
func IsDue(rec model.ServiceRecord, currentMileage int) bool {
	m := rec.Reminder.Mileage
	return m != nil && currentMileage >= *m
}

// NextOilChange returns the pending oil-change reminder with the earliest
// reminder date. A pending record with no reminder date sorts after every
// dated one (as if its date were infinitely far out); there is no fallback
// ordering by mileage. Returns false when no oil-change reminder is pending.
func NextOilChange(v model.Vehicle, now time.Time) (model.ServiceRecord, bool) {
	var best *model.ServiceRecord
	for i := range v.Records {
		rec := &v.Records[i]
		if rec.Category != model.CategoryOilChange {
			continue
		}
		if !IsPending(*rec, now, v.CurrentMileage) {
			continue
		}
		if best == nil || reminderDateBefore(rec.Reminder.Date, best.Reminder.Date) {
			best = rec
		}
	}
	if best == nil {
		return model.ServiceRecord{}, false
	}
	return *best, true
}

// reminderDateBefore orders reminder dates with nil treated as +infinity.
// The comparison is strict, so earlier-positioned records win ties.
func reminderDateBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}
