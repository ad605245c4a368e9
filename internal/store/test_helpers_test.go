package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/raygarage/garage/internal/model"
	"github.com/raygarage/garage/internal/notify"
)

// fakeGateway records gateway calls instead of touching a real alert queue.
type fakeGateway struct {
	authorizations int
	scheduled      []scheduledAlert
	fired          []firedAlert
	cancelled      []string
	cancelledAll   []uuid.UUID
}

type scheduledAlert struct {
	id     string
	fireAt time.Time
}

type firedAlert struct {
	vehicleID uuid.UUID
	recordID  uuid.UUID
}

var _ notify.Gateway = (*fakeGateway)(nil)

func (f *fakeGateway) RequestAuthorization() {
	f.authorizations++
}

func (f *fakeGateway) ScheduleOilChangeReminder(v model.Vehicle, rec model.ServiceRecord, fireAt time.Time) {
	f.scheduled = append(f.scheduled, scheduledAlert{id: notify.OilChangeID(v.ID, rec.ID), fireAt: fireAt})
}

func (f *fakeGateway) FireMileageReminder(v model.Vehicle, rec model.ServiceRecord) {
	f.fired = append(f.fired, firedAlert{vehicleID: v.ID, recordID: rec.ID})
}

func (f *fakeGateway) CancelReminder(vehicleID, recordID uuid.UUID) {
	f.cancelled = append(f.cancelled, notify.OilChangeID(vehicleID, recordID))
}

func (f *fakeGateway) CancelAllReminders(vehicleID uuid.UUID) {
	f.cancelledAll = append(f.cancelledAll, vehicleID)
}
