package store

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/raygarage/garage/internal/model"
	"github.com/raygarage/garage/internal/testutil"
)

var testNow = time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

var nowFunc = testutil.NewClock(testNow).Now

func newTestGarage(t *testing.T) (*Garage, *fakeGateway) {
	t.Helper()
	s := openTestStore(t)
	gw := &fakeGateway{}
	return NewGarage(s, gw, nil, nowFunc), gw
}

func testVehicle(name string) model.Vehicle {
	return model.Vehicle{
		ID:             uuid.New(),
		Name:           name,
		Type:           model.VehicleCar,
		Year:           2020,
		Make:           "Honda",
		Model:          "Civic",
		CurrentMileage: 9000,
	}
}

func oilChangeRecord(remindDate *time.Time, remindMiles *int) model.ServiceRecord {
	return model.ServiceRecord{
		ID:       uuid.New(),
		Title:    "Oil change",
		Category: model.CategoryOilChange,
		Date:     testNow.AddDate(0, -2, 0),
		Mileage:  8000,
		Reminder: model.Reminder{Date: remindDate, Mileage: remindMiles},
	}
}

func TestNewGarage_SeedsSampleOnEmpty(t *testing.T) {
	g, gw := newTestGarage(t)

	if gw.authorizations != 1 {
		t.Errorf("authorization requested %d times, want 1", gw.authorizations)
	}
	vehicles := g.Vehicles()
	if len(vehicles) != 1 {
		t.Fatalf("seeded with %d vehicles, want 1", len(vehicles))
	}
	if vehicles[0].Name != "Weekend Cruiser" {
		t.Errorf("seed vehicle = %q, want the sample", vehicles[0].Name)
	}
}

func TestNewGarage_SeedIsPersisted(t *testing.T) {
	s := openTestStore(t)
	first := NewGarage(s, &fakeGateway{}, nil, nowFunc)
	seedID := first.Vehicles()[0].ID

	// Simulated restart over the same database.
	second := NewGarage(s, &fakeGateway{}, nil, nowFunc)
	vehicles := second.Vehicles()
	if len(vehicles) != 1 || vehicles[0].ID != seedID {
		t.Errorf("restart re-seeded: got %d vehicles, first ID %v, want seed %v",
			len(vehicles), vehicles[0].ID, seedID)
	}
}

func TestAddVehicle_RoundTripAfterRestart(t *testing.T) {
	s := openTestStore(t)
	g := NewGarage(s, &fakeGateway{}, nil, nowFunc)

	cost := 420.00
	v := testVehicle("Truck")
	v.Photo = []byte{0x01, 0x02}
	v.Records = []model.ServiceRecord{{
		ID:       uuid.New(),
		Title:    "Inspection",
		Category: model.CategoryInspection,
		Date:     testNow.AddDate(0, -1, 0),
		Mileage:  8800,
		Cost:     &cost,
		Receipt:  []byte{0x03},
	}}
	if out := g.AddVehicle(v); out != Applied {
		t.Fatalf("AddVehicle() = %v", out)
	}

	reloaded := NewGarage(s, &fakeGateway{}, nil, nowFunc)
	got, ok := reloaded.Vehicle(v.ID)
	if !ok {
		t.Fatal("vehicle missing after restart")
	}
	if got.Name != "Truck" || len(got.Records) != 1 || string(got.Photo) != string(v.Photo) {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if got.Records[0].Cost == nil || *got.Records[0].Cost != cost {
		t.Errorf("record cost lost: %v", got.Records[0].Cost)
	}
}

func TestUpdateVehicle_InPlaceAndIdempotent(t *testing.T) {
	g, _ := newTestGarage(t)

	a := testVehicle("A")
	b := testVehicle("B")
	g.AddVehicle(a)
	g.AddVehicle(b)

	a.Notes = "updated"
	if out := g.UpdateVehicle(a); out != Applied {
		t.Fatalf("UpdateVehicle() = %v", out)
	}
	first := g.Vehicles()

	if out := g.UpdateVehicle(a); out != Applied {
		t.Fatalf("second UpdateVehicle() = %v", out)
	}
	second := g.Vehicles()

	if len(first) != len(second) {
		t.Fatalf("collection size changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Notes != second[i].Notes {
			t.Errorf("collection changed between identical updates at %d", i)
		}
	}
	// Position preserved: A is still before B (after the seed).
	if first[1].ID != a.ID || first[2].ID != b.ID {
		t.Error("UpdateVehicle() did not preserve position")
	}
}

func TestUpdateVehicle_NotFound(t *testing.T) {
	g, _ := newTestGarage(t)
	before := g.Vehicles()

	if out := g.UpdateVehicle(testVehicle("ghost")); out != NotFound {
		t.Errorf("UpdateVehicle() on missing ID = %v, want NotFound", out)
	}
	if len(g.Vehicles()) != len(before) {
		t.Error("missing-ID update changed the collection")
	}
}

func TestDeleteVehicle_CancelsAllAndLeavesOthers(t *testing.T) {
	g, gw := newTestGarage(t)

	a := testVehicle("A")
	b := testVehicle("B")
	g.AddVehicle(a)
	g.AddVehicle(b)

	if out := g.DeleteVehicle(a.ID); out != Applied {
		t.Fatalf("DeleteVehicle() = %v", out)
	}
	if _, ok := g.Vehicle(a.ID); ok {
		t.Error("deleted vehicle still present")
	}
	if _, ok := g.Vehicle(b.ID); !ok {
		t.Error("unrelated vehicle removed")
	}
	if len(gw.cancelledAll) != 1 || gw.cancelledAll[0] != a.ID {
		t.Errorf("CancelAllReminders calls = %v, want exactly [%v]", gw.cancelledAll, a.ID)
	}
}

func TestDeleteVehicle_NotFound(t *testing.T) {
	g, gw := newTestGarage(t)

	if out := g.DeleteVehicle(uuid.New()); out != NotFound {
		t.Errorf("DeleteVehicle() on missing ID = %v, want NotFound", out)
	}
	if len(gw.cancelledAll) != 0 {
		t.Error("missing-ID delete cancelled reminders")
	}
}

func TestAddRecord_InsertsAtFront(t *testing.T) {
	g, _ := newTestGarage(t)

	v := testVehicle("V")
	g.AddVehicle(v)

	first := oilChangeRecord(nil, nil)
	second := model.ServiceRecord{ID: uuid.New(), Title: "Tires", Category: model.CategoryTires, Date: testNow}
	g.AddRecord(first, v.ID)
	g.AddRecord(second, v.ID)

	got, _ := g.Vehicle(v.ID)
	if len(got.Records) != 2 {
		t.Fatalf("record count = %d, want 2", len(got.Records))
	}
	if got.Records[0].ID != second.ID || got.Records[1].ID != first.ID {
		t.Error("AddRecord() did not insert at position 0 preserving prior order")
	}
}

func TestAddRecord_SchedulesOilChangeWithDate(t *testing.T) {
	g, gw := newTestGarage(t)

	v := testVehicle("V")
	g.AddVehicle(v)

	fireAt := testNow.AddDate(0, 2, 0)
	rec := oilChangeRecord(&fireAt, nil)
	g.AddRecord(rec, v.ID)

	if len(gw.scheduled) != 1 {
		t.Fatalf("scheduled %d alerts, want 1", len(gw.scheduled))
	}
	if !gw.scheduled[0].fireAt.Equal(fireAt) {
		t.Errorf("scheduled fireAt = %v, want %v", gw.scheduled[0].fireAt, fireAt)
	}
}

func TestAddRecord_NoScheduleWithoutDateOrWrongCategory(t *testing.T) {
	g, gw := newTestGarage(t)

	v := testVehicle("V")
	g.AddVehicle(v)

	// Oil change without a reminder date: mileage triggers alone do not
	// schedule a calendar alert.
	miles := 12000
	g.AddRecord(oilChangeRecord(nil, &miles), v.ID)

	// Dated reminder on a non-oil-change record.
	fireAt := testNow.AddDate(0, 1, 0)
	g.AddRecord(model.ServiceRecord{
		ID:       uuid.New(),
		Title:    "Rotate tires",
		Category: model.CategoryTires,
		Date:     testNow,
		Reminder: model.Reminder{Date: &fireAt},
	}, v.ID)

	if len(gw.scheduled) != 0 {
		t.Errorf("scheduled %d alerts, want 0", len(gw.scheduled))
	}
}

func TestAddRecord_VehicleNotFound(t *testing.T) {
	g, gw := newTestGarage(t)

	fireAt := testNow.AddDate(0, 1, 0)
	if out := g.AddRecord(oilChangeRecord(&fireAt, nil), uuid.New()); out != NotFound {
		t.Errorf("AddRecord() on missing vehicle = %v, want NotFound", out)
	}
	if len(gw.scheduled) != 0 {
		t.Error("missing-vehicle add scheduled an alert")
	}
}

func TestUpdateRecord_CancelsThenReschedules(t *testing.T) {
	g, gw := newTestGarage(t)

	v := testVehicle("V")
	g.AddVehicle(v)

	fireAt := testNow.AddDate(0, 2, 0)
	rec := oilChangeRecord(&fireAt, nil)
	g.AddRecord(rec, v.ID)

	newFireAt := testNow.AddDate(0, 3, 0)
	rec.Reminder.Date = &newFireAt
	rec.Notes = "pushed out a month"
	if out := g.UpdateRecord(rec, v.ID); out != Applied {
		t.Fatalf("UpdateRecord() = %v", out)
	}

	if len(gw.cancelled) != 1 {
		t.Fatalf("cancelled %d alerts, want 1", len(gw.cancelled))
	}
	if len(gw.scheduled) != 2 || !gw.scheduled[1].fireAt.Equal(newFireAt) {
		t.Fatalf("reschedule missing: %+v", gw.scheduled)
	}

	got, _ := g.Vehicle(v.ID)
	if len(got.Records) != 1 || got.Records[0].Notes != "pushed out a month" {
		t.Error("UpdateRecord() did not replace in place")
	}
}

func TestUpdateRecord_DroppedReminderStaysCancelled(t *testing.T) {
	g, gw := newTestGarage(t)

	v := testVehicle("V")
	g.AddVehicle(v)

	fireAt := testNow.AddDate(0, 2, 0)
	rec := oilChangeRecord(&fireAt, nil)
	g.AddRecord(rec, v.ID)

	rec.Reminder = model.Reminder{}
	g.UpdateRecord(rec, v.ID)

	if len(gw.cancelled) != 1 {
		t.Errorf("cancelled %d alerts, want 1", len(gw.cancelled))
	}
	if len(gw.scheduled) != 1 {
		t.Errorf("scheduled %d alerts, want only the original", len(gw.scheduled))
	}
}

func TestDeleteRecord_CancelsAndLeavesOthers(t *testing.T) {
	g, gw := newTestGarage(t)

	v := testVehicle("V")
	g.AddVehicle(v)

	fireAt := testNow.AddDate(0, 2, 0)
	target := oilChangeRecord(&fireAt, nil)
	other := model.ServiceRecord{ID: uuid.New(), Title: "Wash", Category: model.CategoryDetailing, Date: testNow}
	g.AddRecord(target, v.ID)
	g.AddRecord(other, v.ID)

	if out := g.DeleteRecord(target.ID, v.ID); out != Applied {
		t.Fatalf("DeleteRecord() = %v", out)
	}

	got, _ := g.Vehicle(v.ID)
	if len(got.Records) != 1 || got.Records[0].ID != other.ID {
		t.Error("DeleteRecord() removed the wrong record")
	}
	if len(gw.cancelled) != 1 {
		t.Errorf("cancelled %d alerts, want 1", len(gw.cancelled))
	}
}

func TestUpdateMileage_FiresOnThresholdAndRepeats(t *testing.T) {
	g, gw := newTestGarage(t)

	v := testVehicle("V")
	v.CurrentMileage = 9000
	g.AddVehicle(v)

	threshold := 10000
	g.AddRecord(oilChangeRecord(nil, &threshold), v.ID)

	// Below threshold: nothing fires.
	g.UpdateMileage(9500, v.ID)
	if len(gw.fired) != 0 {
		t.Fatalf("fired %d alerts below threshold", len(gw.fired))
	}

	// Crossing fires exactly once.
	g.UpdateMileage(10500, v.ID)
	if len(gw.fired) != 1 {
		t.Fatalf("fired %d alerts at first crossing, want 1", len(gw.fired))
	}

	// Still above threshold: fires again (no de-duplication across calls).
	g.UpdateMileage(11000, v.ID)
	if len(gw.fired) != 2 {
		t.Fatalf("fired %d alerts after second update, want 2", len(gw.fired))
	}

	got, _ := g.Vehicle(v.ID)
	if got.CurrentMileage != 11000 {
		t.Errorf("current mileage = %d, want 11000", got.CurrentMileage)
	}
}

func TestUpdateMileage_NotFound(t *testing.T) {
	g, gw := newTestGarage(t)

	if out := g.UpdateMileage(50000, uuid.New()); out != NotFound {
		t.Errorf("UpdateMileage() on missing vehicle = %v, want NotFound", out)
	}
	if len(gw.fired) != 0 {
		t.Error("missing-vehicle mileage update fired alerts")
	}
}

func TestLastSaveError_SurfacesPersistFailure(t *testing.T) {
	s := openTestStore(t)
	g := NewGarage(s, &fakeGateway{}, nil, nowFunc)

	if g.LastSaveError() != nil {
		t.Fatalf("unexpected save error after seed: %v", g.LastSaveError())
	}

	// Closing the database makes every subsequent write fail; the mutation
	// still reports Applied and only LastSaveError shows the problem.
	s.Close()
	if out := g.AddVehicle(testVehicle("doomed")); out != Applied {
		t.Fatalf("AddVehicle() after close = %v, want Applied", out)
	}
	if g.LastSaveError() == nil {
		t.Error("LastSaveError() = nil after failed persist")
	}
}
