package jwtservice_test

import (
	"testing"
	"time"

	"github.com/limbo/tempo/pkg/entity"
	jwtservice "github.com/limbo/tempo/pkg/jwt_service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := jwtservice.New("test-secret")
	user := &entity.User{ID: "user_1", Username: "kira", Role: entity.RoleUser}
	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.UserID)
	assert.Equal(t, "kira", claims.Username)
	assert.Equal(t, string(entity.RoleUser), claims.Role)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestGuestClaimsCarryRole(t *testing.T) {
	svc := jwtservice.New("test-secret")
	guest := &entity.User{ID: "guest_1", Username: "guest_1", Role: entity.RoleGuest}
	token, err := svc.GenerateToken(guest)
	require.NoError(t, err)
	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RoleGuest), claims.Role)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	token, err := jwtservice.New("secret-a").GenerateToken(&entity.User{ID: "user_1"})
	require.NoError(t, err)
	_, err = jwtservice.New("secret-b").ParseToken(token)
	assert.Error(t, err)
}
