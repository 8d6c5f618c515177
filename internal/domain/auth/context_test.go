package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthContext_RequireAdmin(t *testing.T) {
	assert.NoError(t, AuthContext{Role: RoleAdmin}.RequireAdmin())
	assert.ErrorIs(t, AuthContext{Role: RoleEmployee}.RequireAdmin(), ErrAdminRequired)
	assert.ErrorIs(t, AuthContext{}.RequireAdmin(), ErrAdminRequired)
}

func TestAuthContext_RequireEmployee(t *testing.T) {
	assert.NoError(t, AuthContext{EmployeeID: "e1"}.RequireEmployee())
	assert.ErrorIs(t, AuthContext{UserID: "u1", Role: RoleAdmin}.RequireEmployee(), ErrEmployeeContextRequired)
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleEmployee.Valid())
	assert.False(t, Role("manager").Valid())
}
