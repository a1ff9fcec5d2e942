package auth

import (
	"testing"
	"time"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "bathudi"})
	admin := &models.AdminUser{ID: 7, Email: "admin@bathudi.co.za", Role: models.RoleAdmin}

	token, expiresIn, err := svc.GenerateAccessToken(admin)
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.AdminID)
	assert.Equal(t, string(models.RoleAdmin), claims.Role)
}

func TestValidateToken_RejectsForeignAndExpired(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "bathudi"})
	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "bathudi"})
	expired := NewJWTService(JWTConfig{SecretKey: "secret", AccessTokenExp: -time.Minute, TokenIssuer: "bathudi"})
	admin := &models.AdminUser{ID: 1, Email: "a@b.co", Role: models.RoleAdmin}

	foreign, _, err := other.GenerateAccessToken(admin)
	require.NoError(t, err)
	_, err = svc.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	stale, _, err := expired.GenerateAccessToken(admin)
	require.NoError(t, err)
	_, err = svc.ValidateToken(stale)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "s3cret!"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
