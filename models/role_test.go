package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleUser, RoleViewer, RoleClient} {
		assert.True(t, r.Valid(), string(r))
	}
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, RoleAdmin.Staff())
	assert.True(t, RoleViewer.Staff())
	assert.False(t, RoleClient.Staff())

	assert.True(t, RoleAdmin.CanWriteCases())
	assert.True(t, RoleUser.CanWriteCases())
	assert.False(t, RoleViewer.CanWriteCases())
	assert.False(t, RoleClient.CanWriteCases())

	assert.True(t, RoleAdmin.CanManageUsers())
	assert.False(t, RoleUser.CanManageUsers())
}

func TestParseStaffRole(t *testing.T) {
	r, err := ParseStaffRole("viewer")
	assert.NoError(t, err)
	assert.Equal(t, RoleViewer, r)

	_, err = ParseStaffRole("client")
	assert.Error(t, err)

	_, err = ParseStaffRole("root")
	assert.Error(t, err)
}
