package store

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/raygarage/garage/internal/model"
	"github.com/raygarage/garage/internal/notify"
	"github.com/raygarage/garage/internal/reminder"
)

// Outcome is the result of a garage mutation. Operations never fail loudly:
// a lookup miss is a silent no-op reported as NotFound, and persistence
// problems are kept out of the operation result entirely (see
// LastSaveError).
type Outcome int

const (
	Applied Outcome = iota
	NotFound
)

func (o Outcome) String() string {
	if o == Applied {
		return "applied"
	}
	return "not found"
}

// Garage is the sole owner of the in-memory vehicle collection. It applies
// commands, writes the whole collection through to the Store after every
// mutation, and schedules or cancels notification-gateway alerts as a side
// effect of record mutations.
//
// All mutations are synchronous and expected to run from a single caller;
// there is no internal locking.
type Garage struct {
	st      *Store
	gateway notify.Gateway
	log     *zap.Logger
	now     func() time.Time

	vehicles    []model.Vehicle
	lastSaveErr error
}

// NewGarage loads the persisted collection, seeding it with the sample
// vehicle when nothing (or nothing decodable) is stored, and requests
// notification authorization once.
func NewGarage(st *Store, gateway notify.Gateway, log *zap.Logger, now func() time.Time) *Garage {
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	g := &Garage{st: st, gateway: gateway, log: log, now: now}

	g.gateway.RequestAuthorization()

	vehicles, ok, err := st.loadVehicles()
	if err != nil {
		log.Warn("load failed, starting from sample garage", zap.Error(err))
	}
	if err != nil || !ok {
		g.vehicles = []model.Vehicle{model.SampleVehicle(now())}
		g.persist()
		return g
	}
	g.vehicles = vehicles
	return g
}

// Vehicles returns the collection in display order. The returned slice is
// the caller's; the elements still share nested record slices with the
// store, so treat them as read-only.
func (g *Garage) Vehicles() []model.Vehicle {
	out := make([]model.Vehicle, len(g.vehicles))
	copy(out, g.vehicles)
	return out
}

// Vehicle looks up a vehicle by ID.
func (g *Garage) Vehicle(id uuid.UUID) (model.Vehicle, bool) {
	if i := g.index(id); i >= 0 {
		return g.vehicles[i], true
	}
	return model.Vehicle{}, false
}

// AddVehicle appends the vehicle to the end of the collection. The caller
// generates the ID fresh; colliding with an existing ID is a precondition
// violation.
func (g *Garage) AddVehicle(v model.Vehicle) Outcome {
	g.vehicles = append(g.vehicles, v)
	g.persist()
	return Applied
}

// UpdateVehicle replaces the vehicle with the matching ID in place,
// preserving its position.
func (g *Garage) UpdateVehicle(v model.Vehicle) Outcome {
	i := g.index(v.ID)
	if i < 0 {
		return NotFound
	}
	g.vehicles[i] = v
	g.persist()
	return Applied
}

// DeleteVehicle removes every vehicle matching the ID and cancels all of
// its pending alerts. Records go with the vehicle; they are stored inline.
func (g *Garage) DeleteVehicle(id uuid.UUID) Outcome {
	kept := make([]model.Vehicle, 0, len(g.vehicles))
	for _, v := range g.vehicles {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(g.vehicles) {
		return NotFound
	}
	g.vehicles = kept
	g.gateway.CancelAllReminders(id)
	g.persist()
	return Applied
}

// AddRecord inserts the record at the front of the vehicle's sequence
// (most-recent-first). An oil-change record carrying a reminder date gets a
// one-shot alert scheduled at that date.
func (g *Garage) AddRecord(rec model.ServiceRecord, vehicleID uuid.UUID) Outcome {
	i := g.index(vehicleID)
	if i < 0 {
		return NotFound
	}
	v := &g.vehicles[i]
	v.Records = append([]model.ServiceRecord{rec}, v.Records...)
	g.scheduleIfOilChange(*v, rec)
	g.persist()
	return Applied
}

// UpdateRecord cancels any alert under the record's identifier, replaces
// the record in place, then re-schedules under the same policy as
// AddRecord.
func (g *Garage) UpdateRecord(rec model.ServiceRecord, vehicleID uuid.UUID) Outcome {
	i := g.index(vehicleID)
	if i < 0 {
		return NotFound
	}
	v := &g.vehicles[i]
	for j := range v.Records {
		if v.Records[j].ID != rec.ID {
			continue
		}
		g.gateway.CancelReminder(vehicleID, rec.ID)
		v.Records[j] = rec
		g.scheduleIfOilChange(*v, rec)
		g.persist()
		return Applied
	}
	return NotFound
}

// DeleteRecord removes the record from the vehicle's sequence and cancels
// its alert. Other records are untouched.
func (g *Garage) DeleteRecord(recordID, vehicleID uuid.UUID) Outcome {
	i := g.index(vehicleID)
	if i < 0 {
		return NotFound
	}
	v := &g.vehicles[i]
	for j := range v.Records {
		if v.Records[j].ID != recordID {
			continue
		}
		v.Records = append(v.Records[:j:j], v.Records[j+1:]...)
		g.gateway.CancelReminder(vehicleID, recordID)
		g.persist()
		return Applied
	}
	return NotFound
}

// UpdateMileage sets the vehicle's current mileage and fires an immediate
// alert for every record whose mileage threshold is now met or exceeded.
//
// The check is idempotent per call but not de-duplicated across calls: a
// second update while still above a threshold fires that record's alert
// again. The original behaved this way and callers rely on the nagging.
func (g *Garage) UpdateMileage(mileage int, vehicleID uuid.UUID) Outcome {
	i := g.index(vehicleID)
	if i < 0 {
		return NotFound
	}
	v := &g.vehicles[i]
	v.CurrentMileage = mileage
	for _, rec := range v.Records {
		if reminder.IsDue(rec, mileage) {
			g.gateway.FireMileageReminder(*v, rec)
		}
	}
	g.persist()
	return Applied
}

// LastSaveError returns the persistence error from the most recent
// mutation, or nil if it succeeded. Mutations themselves never report save
// failures; this is the one place to observe them.
func (g *Garage) LastSaveError() error {
	return g.lastSaveErr
}

func (g *Garage) index(id uuid.UUID) int {
	for i := range g.vehicles {
		if g.vehicles[i].ID == id {
			return i
		}
	}
	return -1
}

func (g *Garage) scheduleIfOilChange(v model.Vehicle, rec model.ServiceRecord) {
	if rec.Category == model.CategoryOilChange && rec.Reminder.Date != nil {
		g.gateway.ScheduleOilChangeReminder(v, rec, *rec.Reminder.Date)
	}
}

// persist writes the whole collection through synchronously. Failures are
// logged and retained for LastSaveError but never surfaced to the caller.
func (g *Garage) persist() {
	if err := g.st.saveVehicles(g.vehicles); err != nil {
		g.lastSaveErr = err
		g.log.Warn("persist failed", zap.Int("vehicles", len(g.vehicles)), zap.Error(err))
		return
	}
	g.lastSaveErr = nil
}
