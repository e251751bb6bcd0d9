package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_Issue(t *testing.T) {
	secret := "test-secret"
	j := NewJWT(secret)

	token, err := j.Issue("ops@example.com", []string{"admin"}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "ops@example.com", claims.Subject)
	assert.Equal(t, []string{"admin"}, claims.Roles)
	assert.Equal(t, issuerName, claims.Issuer)
}

func TestJWT_Verify(t *testing.T) {
	j := NewJWT("test-secret")
	valid, err := j.Issue("ops@example.com", []string{"admin"}, time.Hour)
	require.NoError(t, err)
	expired, err := j.Issue("ops@example.com", []string{"admin"}, -time.Minute)
	require.NoError(t, err)
	noRole, err := j.Issue("ops@example.com", nil, time.Hour)
	require.NoError(t, err)
	otherKey, err := NewJWT("other-secret").Issue("ops@example.com", []string{"admin"}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantSub string
		wantErr bool
	}{
		{"valid", valid, "ops@example.com", false},
		{"expired", expired, "", true},
		{"missing admin role", noRole, "", true},
		{"wrong key", otherKey, "", true},
		{"garbage", "not-a-jwt", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := j.Verify(tt.token)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSub, sub)
		})
	}
}
