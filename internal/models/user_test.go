// internal/models/user_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, RoleAdmin.Can(CapabilityManageCatalog))
	assert.True(t, RoleAdmin.Can(CapabilityManageOrders))
	assert.True(t, RoleAdmin.Can(CapabilityManageUsers))

	assert.False(t, RoleCustomer.Can(CapabilityManageCatalog))
	assert.False(t, RoleCustomer.Can(CapabilityManageOrders))
	assert.False(t, RoleCustomer.Can(CapabilityManageUsers))

	// An unknown role holds no capabilities.
	assert.False(t, Role("seller").Can(CapabilityManageCatalog))
}

func TestPasswordHashing(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("secret123"))

	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NoError(t, user.CheckPassword("secret123"))
	assert.Error(t, user.CheckPassword("wrong"))
}

func TestProfileReflectsRole(t *testing.T) {
	admin := &User{Name: "Ada", Email: "ada@example.com", Role: RoleAdmin}
	assert.True(t, admin.Profile().IsAdmin)

	customer := &User{Name: "Bob", Email: "bob@example.com", Role: RoleCustomer}
	assert.False(t, customer.Profile().IsAdmin)
}
