package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFolio(t *testing.T) {
	assert.Equal(t, "A-000042", FormatFolio("A", 42))
	assert.Equal(t, "B-123456", FormatFolio("B", 123456))
	assert.Equal(t, "A-1234567", FormatFolio("A", 1234567), "folios past the pad width keep all digits")
	assert.Equal(t, "000007", FormatFolio("", 7))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "la-fonda", Slugify("La Fonda"))
	assert.Equal(t, "tacos-don-pepe", Slugify("Tacos  Don Pepe!"))
	assert.Equal(t, "cafe-2000", Slugify("--Cafe 2000--"))
}

func TestParseUUID(t *testing.T) {
	id := uuid.New()
	parsed, err := ParseUUID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseUUID("not-a-uuid")
	assert.Error(t, err)
}

func TestJWTManager_AccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()
	restaurantID := uuid.New()

	token, err := m.GenerateAccessToken(userID, restaurantID, "carmen@lafonda.mx", "cashier")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, restaurantID, claims.RestaurantID)
	assert.Equal(t, "carmen@lafonda.mx", claims.Email)
	assert.Equal(t, "cashier", claims.Role)
	assert.Equal(t, "fenix-api", claims.Issuer)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	other := NewJWTManager("other-secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), uuid.New(), "x@y.mx", "cashier")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), uuid.New(), "x@y.mx", "cashier")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RefreshTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateRefreshToken(userID)
	require.NoError(t, err)

	got, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}
