package domain

import "time"

// ConsentGrant is an externally managed permission for a clinician (or any
// clinician of a facility) to act on one patient's data. This core only
// reads grants; it never creates or mutates them.
type ConsentGrant struct {
	ID          string
	PatientID   string
	ClinicianID string
	FacilityID  string
	Status      string
	ExpiresAt   *time.Time
	CreatedAt   time.Time
}
