package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"

	"github.com/raygarage/garage/internal/model"
)

// TestStateEncoding_Golden pins the persisted blob layout. The blob carries
// no version field, so any change to this encoding orphans existing
// databases: they decode as absent and get reseeded.
func TestStateEncoding_Golden(t *testing.T) {
	cost := 420.5
	remindDate := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	installedAt := 100
	life := 400
	expires := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	state := garageState{Vehicles: []model.Vehicle{{
		ID:             uuid.MustParse("7b0c3f1e-2a4d-4e8b-9c6f-0d1e2f3a4b5c"),
		Name:           "Weekend Cruiser",
		Type:           model.VehicleBoat,
		Year:           2018,
		Make:           "Sea Ray",
		Model:          "SPX 210",
		CurrentMileage: 320,
		Notes:          "Stored at Harbor Marina",
		Records: []model.ServiceRecord{{
			ID:       uuid.MustParse("1f2e3d4c-5b6a-4978-8877-665544332211"),
			Title:    "Spring service",
			Category: model.CategoryInspection,
			Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Mileage:  300,
			Cost:     &cost,
			Notes:    "Changed filters and inspected hull.",
			Reminder: model.Reminder{Date: &remindDate},
		}},
		Tires: &model.TireInfo{
			InstalledMileage:  &installedAt,
			ExpectedLifeMiles: &life,
			Brand:             "Michelin",
		},
		Insurance: &model.InsuranceInfo{
			Company:        "State Farm",
			PolicyNumber:   "123456789",
			ExpirationDate: &expires,
		},
	}}}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}

	g := goldie.New(t)
	g.Assert(t, "garage_state", data)
}
