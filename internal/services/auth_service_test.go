package services

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/config"
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(&config.Config{
		JWTSecret:         "test-secret",
		JWTAccessExpiry:   time.Hour,
		AdminEmail:        "warden@hostel.test",
		AdminPasswordHash: string(hash),
	})
}

func TestLogin_IssuesAdminToken(t *testing.T) {
	svc := newTestAuthService(t)

	resp, err := svc.Login(&dto.LoginRequest{Email: "Warden@Hostel.test", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, AdminRole, claims["role"])
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(&dto.LoginRequest{Email: "warden@hostel.test", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "student@hostel.test", Password: "correct horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledWithoutConfiguredAdmin(t *testing.T) {
	svc := NewAuthService(&config.Config{JWTSecret: "s"})

	_, err := svc.Login(&dto.LoginRequest{Email: "", Password: ""})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
