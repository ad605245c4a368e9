// Package model contains the core value types for the garage: vehicles,
// service records, tire and insurance metadata, and their read-only
// derivations. The package performs no I/O and is imported by every other
// internal package.
package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// VehicleType classifies a tracked vehicle.
type VehicleType string

const (
	VehicleCar        VehicleType = "car"
	VehicleBoat       VehicleType = "boat"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleOther      VehicleType = "other"
)

// VehicleTypes lists all types in display order.
var VehicleTypes = []VehicleType{VehicleCar, VehicleBoat, VehicleMotorcycle, VehicleOther}

// Label returns the human-readable form of the type.
func (t VehicleType) Label() string {
	switch t {
	case VehicleCar:
		return "Car"
	case VehicleBoat:
		return "Boat"
	case VehicleMotorcycle:
		return "Motorcycle"
	default:
		return "Other"
	}
}

// ParseVehicleType accepts the wire form ("car") or the label ("Car").
func ParseVehicleType(s string) (VehicleType, error) {
	for _, t := range VehicleTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown vehicle type %q", s)
}

// Vehicle is a tracked car/boat/motorcycle/other entity with mileage and
// maintenance metadata.
//
// The ID is assigned at creation and immutable for the vehicle's lifetime;
// uniqueness across the collection is the creator's responsibility. Records
// are kept in insertion order, most recent first by convention; they are
// never re-sorted.
type Vehicle struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Type           VehicleType     `json:"type"`
	Year           int             `json:"year"`
	Make           string          `json:"make"`
	Model          string          `json:"model"`
	CurrentMileage int             `json:"current_mileage"`
	Notes          string          `json:"notes,omitempty"`
	Records        []ServiceRecord `json:"records"`
	Tires          *TireInfo       `json:"tires,omitempty"`
	Insurance      *InsuranceInfo  `json:"insurance,omitempty"`
	Photo          []byte          `json:"photo,omitempty"`
}

// DisplayName returns the user-chosen name, or "{year} {make} {model}" when
// the name is blank or whitespace-only.
func (v Vehicle) DisplayName() string {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model)
	}
	return v.Name
}

// LastOilChange returns the oil-change record with the latest service date.
// When two records share the date, the one positioned earlier in Records
// wins (comparison is strictly-greater).
func (v Vehicle) LastOilChange() (ServiceRecord, bool) {
	var best *ServiceRecord
	for i := range v.Records {
		rec := &v.Records[i]
		if rec.Category != CategoryOilChange {
			continue
		}
		if best == nil || rec.Date.After(best.Date) {
			best = rec
		}
	}
	if best == nil {
		return ServiceRecord{}, false
	}
	return *best, true
}

// Record returns the service record with the given ID.
func (v Vehicle) Record(id uuid.UUID) (ServiceRecord, bool) {
	for _, rec := range v.Records {
		if rec.ID == id {
			return rec, true
		}
	}
	return ServiceRecord{}, false
}

// HasPhoto reports whether a photo attachment is present.
func (v Vehicle) HasPhoto() bool {
	return len(v.Photo) > 0
}
