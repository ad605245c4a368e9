package model

import "time"

// InsuranceInfo holds the insurance policy metadata for a vehicle. It has no
// derived numeric state; only the display thresholds below.
type InsuranceInfo struct {
	Company        string     `json:"company,omitempty"`
	PolicyNumber   string     `json:"policy_number,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// Expired reports whether the policy's expiration date has passed.
func (i InsuranceInfo) Expired(now time.Time) bool {
	return i.ExpirationDate != nil && i.ExpirationDate.Before(now)
}

// ExpiringSoon reports whether the policy expires within the next 30 days.
// An already-expired policy also reports true; displays check Expired first.
func (i InsuranceInfo) ExpiringSoon(now time.Time) bool {
	return i.ExpirationDate != nil && i.ExpirationDate.Before(now.AddDate(0, 0, 30))
}
