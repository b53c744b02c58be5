package service

import (
	"testing"

	"github.com/chirag640/national-health-record-system-backend-sub001/pkg/constant"
	"github.com/stretchr/testify/assert"
)

func TestPermissionsFor(t *testing.T) {
	assert.Contains(t, PermissionsFor(constant.RolePatient), "manage:own_consents")
	assert.Contains(t, PermissionsFor(constant.RoleClinician), "read:patient_data_with_consent")
	assert.Contains(t, PermissionsFor(constant.RoleFacilityAdmin), "create:clinicians")
	assert.Contains(t, PermissionsFor(constant.RoleSystemAdmin), "manage:global_config")
	assert.Nil(t, PermissionsFor("unknown"))
}

func TestPermissionsFor_ReturnsCopy(t *testing.T) {
	perms := PermissionsFor(constant.RolePatient)
	perms[0] = "mutated"

	assert.NotContains(t, PermissionsFor(constant.RolePatient), "mutated")
}
