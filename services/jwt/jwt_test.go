package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	id := uuid.New()
	token, expiresAt, err := GenerateToken(id, "a@b.com", "admin", "secret", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := ValidateAndGetClaims(token, "secret")
	require.NoError(t, err)
	got, err := UserID(claims)
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, "admin", claims["role"])
	assert.InDelta(t, time.Hour.Seconds(), RemainingTTL(claims).Seconds(), 5)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := GenerateToken(uuid.New(), "a@b.com", "user", "secret", time.Hour)
	require.NoError(t, err)
	_, err = ValidateAndGetClaims(token, "other")
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	token, _, err := GenerateToken(uuid.New(), "a@b.com", "user", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateAndGetClaims(token, "secret")
	assert.Error(t, err)
}
