package model

import "time"

// TireInfo describes the tires currently installed on a vehicle.
type TireInfo struct {
	InstalledDate     *time.Time `json:"installed_date,omitempty"`
	InstalledMileage  *int       `json:"installed_mileage,omitempty"`
	ExpectedLifeMiles *int       `json:"expected_life_miles,omitempty"`
	Brand             string     `json:"brand,omitempty"`
	Model             string     `json:"model,omitempty"`
	Notes             string     `json:"notes,omitempty"`
}

// RemainingLifePercentage returns the tire summary percentage, defined only
// when both installed mileage and a positive expected life are present.
//
// This mirrors the long-standing summary formula
// (expectedLifeMiles/expectedLifeMiles*100, clamped to [0,100]) and does NOT
// subtract miles already driven, so the value is always 100 when defined.
// Wear is the odometer-aware computation used by the detail display; the
// two disagree and are kept separate on purpose.
func (t TireInfo) RemainingLifePercentage() (float64, bool) {
	if t.InstalledMileage == nil || t.ExpectedLifeMiles == nil || *t.ExpectedLifeMiles <= 0 {
		return 0, false
	}
	pct := float64(*t.ExpectedLifeMiles) / float64(*t.ExpectedLifeMiles) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct, true
}

// Wear computes the remaining tire life against the vehicle's current
// odometer reading: miles used since installation, miles remaining out of
// the expected life, and the remaining-life percentage. Defined only when
// installed mileage and expected life are both present; the percentage is 0
// when the expected life is not positive.
func (t TireInfo) Wear(currentMileage int) (milesRemaining int, pct float64, ok bool) {
	if t.InstalledMileage == nil || t.ExpectedLifeMiles == nil {
		return 0, 0, false
	}
	milesUsed := currentMileage - *t.InstalledMileage
	if milesUsed < 0 {
		milesUsed = 0
	}
	milesRemaining = *t.ExpectedLifeMiles - milesUsed
	if milesRemaining < 0 {
		milesRemaining = 0
	}
	if *t.ExpectedLifeMiles > 0 {
		pct = float64(milesRemaining) / float64(*t.ExpectedLifeMiles) * 100
	}
	return milesRemaining, pct, true
}
