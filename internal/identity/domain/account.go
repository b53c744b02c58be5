package domain

import "time"

// Account is the identity record. Role is bound at creation and never
// changes; deactivation is a flag, accounts are not hard-deleted.
type Account struct {
	ID             string
	Email          string
	Role           string
	PasswordHash   string
	IsActive       bool
	EmailVerified  bool
	FailedAttempts int
	LockUntil      *time.Time
	LastLoginAt    *time.Time
	FacilityID     string
	ClinicianID    string
	PatientID      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Locked reports whether the account is under an active login lock.
func (a *Account) Locked(now time.Time) bool {
	return a.LockUntil != nil && a.LockUntil.After(now)
}

// LoginFailure is the post-increment lockout state returned by
// AccountRepository.RecordFailedLogin.
type LoginFailure struct {
	FailedAttempts int
	LockUntil      *time.Time
}
