package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndDecode(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	empID := "emp-1"

	token, expiresAt, err := svc.GenerateAccessToken("user-1", &empID, auth.RoleEmployee)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	actor, err := AuthContextFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, auth.AuthContext{UserID: "user-1", EmployeeID: "emp-1", Role: auth.RoleEmployee}, actor)
}

func TestAdminTokenWithoutEmployee(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, _, err := svc.GenerateAccessToken("admin-1", nil, auth.RoleAdmin)
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	actor, err := AuthContextFromClaims(claims)
	require.NoError(t, err)
	assert.True(t, actor.IsAdmin())
	assert.Empty(t, actor.EmployeeID)
}

func TestAuthContextFromClaims_Rejects(t *testing.T) {
	cases := map[string]map[string]interface{}{
		"refresh type": {"type": "refresh", "user_id": "u", "role": "admin"},
		"no user":      {"type": "access", "role": "admin"},
		"bad role":     {"type": "access", "user_id": "u", "role": "owner"},
	}
	for name, claims := range cases {
		_, err := AuthContextFromClaims(claims)
		assert.ErrorIs(t, err, auth.ErrInvalidToken, name)
	}
}

func TestInvalidExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "soon")
	_, _, err := svc.GenerateAccessToken("u", nil, auth.RoleAdmin)
	assert.Error(t, err)
}
