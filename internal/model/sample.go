package model

import (
	"time"

	"github.com/google/uuid"
)

// SampleVehicle returns the example vehicle the garage is seeded with on
// first launch: a 2018 Sea Ray with one past inspection and a reminder five
// months out. Dates are relative to now so the seed looks current whenever
// it is created.
func SampleVehicle(now time.Time) Vehicle {
	cost := 420.00
	reminderDate := now.AddDate(0, 5, 0)
	return Vehicle{
		ID:             uuid.New(),
		Name:           "Weekend Cruiser",
		Type:           VehicleBoat,
		Year:           2018,
		Make:           "Sea Ray",
		Model:          "SPX 210",
		CurrentMileage: 320,
		Notes:          "Stored at Harbor Marina",
		Records: []ServiceRecord{
			{
				ID:       uuid.New(),
				Title:    "Spring service",
				Category: CategoryInspection,
				Date:     now.AddDate(0, 0, -40),
				Mileage:  300,
				Cost:     &cost,
				Notes:    "Changed filters and inspected hull.",
				Reminder: Reminder{Date: &reminderDate},
			},
		},
	}
}
