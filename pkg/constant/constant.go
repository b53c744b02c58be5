package constant

import "time"

// Account roles. Exactly one role is bound to an account at creation.
const (
	RolePatient       = "patient"
	RoleClinician     = "clinician"
	RoleFacilityAdmin = "facility_admin"
	RoleSystemAdmin   = "system_admin"
)

// OTP purposes.
const (
	OTPPurposeEmailVerification = "email_verification"
	OTPPurposeLogin             = "login"
	OTPPurposePasswordReset     = "password_reset"
	OTPPurposeMFA               = "mfa"
	OTPPurposeEmergencyAccess   = "emergency_access"
)

// Lockout policy.
const (
	MaxFailedLogins = 5
	LockDuration    = 30 * time.Minute
)

// OTP policy.
const (
	OTPLength      = 6
	OTPTTL         = 5 * time.Minute
	OTPMaxAttempts = 3
)

// bcrypt cost factors. Passwords get the higher cost; OTP codes and
// refresh-token secrets are short-lived and use a cheaper one.
const (
	PasswordHashCost = 12
	SecretHashCost   = 10
)

// DefaultMaxActiveSessions caps concurrent refresh-token sessions per account.
const DefaultMaxActiveSessions = 5

var roles = map[string]struct{}{
	RolePatient:       {},
	RoleClinician:     {},
	RoleFacilityAdmin: {},
	RoleSystemAdmin:   {},
}

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	_, ok := roles[role]
	return ok
}

var otpPurposes = map[string]struct{}{
	OTPPurposeEmailVerification: {},
	OTPPurposeLogin:             {},
	OTPPurposePasswordReset:     {},
	OTPPurposeMFA:               {},
	OTPPurposeEmergencyAccess:   {},
}

// ValidOTPPurpose reports whether purpose is a known OTP purpose.
func ValidOTPPurpose(purpose string) bool {
	_, ok := otpPurposes[purpose]
	return ok
}
