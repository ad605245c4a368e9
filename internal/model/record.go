package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ServiceCategory classifies a logged maintenance event.
type ServiceCategory string

const (
	CategoryOilChange  ServiceCategory = "oil_change"
	CategoryInspection ServiceCategory = "inspection"
	CategoryRepair     ServiceCategory = "repair"
	CategoryTires      ServiceCategory = "tires"
	CategoryBattery    ServiceCategory = "battery"
	CategoryDetailing  ServiceCategory = "detailing"
	CategoryOther      ServiceCategory = "other"
)

// ServiceCategories lists all categories in display order.
var ServiceCategories = []ServiceCategory{
	CategoryOilChange,
	CategoryInspection,
	CategoryRepair,
	CategoryTires,
	CategoryBattery,
	CategoryDetailing,
	CategoryOther,
}

// Label returns the human-readable form of the category.
func (c ServiceCategory) Label() string {
	switch c {
	case CategoryOilChange:
		return "Oil Change"
	case CategoryInspection:
		return "Inspection"
	case CategoryRepair:
		return "Repair"
	case CategoryTires:
		return "Tires"
	case CategoryBattery:
		return "Battery"
	case CategoryDetailing:
		return "Detailing"
	default:
		return "Other"
	}
}

// ParseServiceCategory accepts the wire form ("oil_change") or the label
// ("Oil Change").
func ParseServiceCategory(s string) (ServiceCategory, error) {
	for _, c := range ServiceCategories {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, c.Label()) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown service category %q", s)
}

// ReminderKind identifies which triggers a reminder carries.
type ReminderKind int

const (
	ReminderNone ReminderKind = iota
	ReminderByDate
	ReminderByMileage
	ReminderByDateAndMileage
)

// Reminder is a date- and/or mileage-triggered follow-up attached to a
// service record. Date and mileage are independent triggers, not mutually
// exclusive: either, both, or neither may be set.
type Reminder struct {
	Date    *time.Time `json:"date,omitempty"`
	Mileage *int       `json:"mileage,omitempty"`
}

// Kind reports which combination of triggers is set.
func (r Reminder) Kind() ReminderKind {
	switch {
	case r.Date != nil && r.Mileage != nil:
		return ReminderByDateAndMileage
	case r.Date != nil:
		return ReminderByDate
	case r.Mileage != nil:
		return ReminderByMileage
	default:
		return ReminderNone
	}
}

// ServiceRecord is a logged maintenance event against a vehicle. A record
// belongs to exactly one vehicle for its lifetime.
type ServiceRecord struct {
	ID             uuid.UUID       `json:"id"`
	Title          string          `json:"title"`
	Category       ServiceCategory `json:"category"`
	Date           time.Time       `json:"date"`
	Mileage        int             `json:"mileage"`
	Cost           *float64        `json:"cost,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	Reminder       Reminder        `json:"reminder"`
	Receipt        []byte          `json:"receipt,omitempty"`
	AttachmentName string          `json:"attachment_name,omitempty"`
}
