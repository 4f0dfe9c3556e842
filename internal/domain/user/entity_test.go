package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleIsOwner(t *testing.T) {
	assert.True(t, RoleOwner.IsOwner())
	assert.False(t, RoleManager.IsOwner())
	assert.False(t, RoleEmployee.IsOwner())
	assert.False(t, RolePending.IsOwner())
}

func TestRoleCanApprove(t *testing.T) {
	assert.True(t, RoleOwner.CanApprove())
	assert.True(t, RoleManager.CanApprove())
	assert.False(t, RoleEmployee.CanApprove())
	assert.False(t, RolePending.CanApprove())
}

func TestRoleCanLogin(t *testing.T) {
	assert.True(t, RoleOwner.CanLogin())
	assert.True(t, RoleManager.CanLogin())
	assert.True(t, RoleEmployee.CanLogin())
	assert.False(t, RolePending.CanLogin())
}
