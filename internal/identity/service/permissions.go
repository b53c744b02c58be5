package service

import "github.com/chirag640/national-health-record-system-backend-sub001/pkg/constant"

// rolePermissions is the role → capability table. It is configuration, not
// business logic: built once, never mutated at runtime.
var rolePermissions = map[string][]string{
	constant.RolePatient: {
		"read:own_profile",
		"manage:own_consents",
		"read:own_records",
	},
	constant.RoleClinician: {
		"read:patient_data_with_consent",
		"create:encounters",
		"read:own_profile",
	},
	constant.RoleFacilityAdmin: {
		"create:clinicians",
		"manage:facility_users",
		"read:facility_reports",
	},
	constant.RoleSystemAdmin: {
		"manage:global_config",
		"manage:facilities",
		"read:all_audit_logs",
	},
}

// PermissionsFor returns the capability list for a role. The returned slice
// is a copy; callers cannot mutate the table through it.
func PermissionsFor(role string) []string {
	perms, ok := rolePermissions[role]
	if !ok {
		return nil
	}

	out := make([]string, len(perms))
	copy(out, perms)

	return out
}
