package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleCapabilities(t *testing.T) {
	for _, c := range []Capability{CapContentManage, CapMediaUpload, CapPPDBRead, CapPPDBUpdateStatus, CapPPDBExport} {
		assert.True(t, HasCapability(RoleAdmin, c), c)
		assert.True(t, HasCapability(RoleSuperadmin, c), c)
	}

	assert.False(t, HasCapability(RoleAdmin, CapUsersManage))
	assert.False(t, HasCapability(RoleAdmin, CapStorageBrowse))
	assert.True(t, HasCapability(RoleSuperadmin, CapUsersManage))
	assert.True(t, HasCapability(RoleSuperadmin, CapStorageBrowse))

	assert.False(t, HasCapability("guru", CapContentManage))
	assert.False(t, HasCapability("", CapPPDBRead))
}

func TestRolesWith(t *testing.T) {
	assert.Equal(t, []string{RoleSuperadmin}, RolesWith(CapUsersManage))
	assert.ElementsMatch(t, []string{RoleAdmin, RoleSuperadmin}, RolesWith(CapMediaUpload))
}

// append pada slice admin tidak boleh ikut mengubah capability admin.
func TestAdminCapabilitiesNotAliased(t *testing.T) {
	assert.Len(t, RoleCapabilities[RoleAdmin], 5)
	assert.Len(t, RoleCapabilities[RoleSuperadmin], 7)
}
