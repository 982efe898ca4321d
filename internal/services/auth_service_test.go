// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stalkershop/stalker-backend/internal/models"
	"github.com/stalkershop/stalker-backend/internal/utils"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	return NewAuthService(setupTestDB(t), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(t)

	auth, err := svc.Register(&RegisterRequest{
		Username: "janedoe",
		Email:    "jane@example.com",
		Password: "StrongPass1!",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleCustomer, auth.User.Role)
	assert.NotEmpty(t, auth.AccessToken)

	claims, err := utils.ValidateJWT(auth.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "janedoe", claims.Username)
	assert.Equal(t, string(models.UserRoleCustomer), claims.Role)

	login, err := svc.Login(&LoginRequest{Email: "jane@example.com", Password: "StrongPass1!"})
	require.NoError(t, err)
	assert.NotNil(t, login.User.LastLoginAt)

	_, err = svc.Login(&LoginRequest{Email: "jane@example.com", Password: "WrongPass1!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Register(&RegisterRequest{
		Username: "janedoe",
		Email:    "jane@example.com",
		Password: "StrongPass1!",
	})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterRequest{
		Username: "janedoe2",
		Email:    "jane@example.com",
		Password: "StrongPass1!",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(&RegisterRequest{
		Username: "janedoe",
		Email:    "jane2@example.com",
		Password: "StrongPass1!",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterResellerRole(t *testing.T) {
	svc := newTestAuthService(t)

	auth, err := svc.Register(&RegisterRequest{
		Username: "reseller1",
		Email:    "reseller@example.com",
		Password: "StrongPass1!",
		Role:     "reseller",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleReseller, auth.User.Role)
}

func TestLoginDisabledAccount(t *testing.T) {
	svc := newTestAuthService(t)

	auth, err := svc.Register(&RegisterRequest{
		Username: "banned",
		Email:    "banned@example.com",
		Password: "StrongPass1!",
	})
	require.NoError(t, err)
	require.NoError(t, svc.db.Model(auth.User).Update("is_active", false).Error)

	_, err = svc.Login(&LoginRequest{Email: "banned@example.com", Password: "StrongPass1!"})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(t)

	auth, err := svc.Register(&RegisterRequest{
		Username: "janedoe",
		Email:    "jane@example.com",
		Password: "StrongPass1!",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(auth.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, auth.User.ID, refreshed.User.ID)

	_, err = svc.RefreshToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
