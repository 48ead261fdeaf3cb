package utils

import (
	"testing"
	"tripsplit-backend/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config.Load()

	userID := uuid.New()
	token, err := GenerateToken(userID, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	config.Load()

	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongKey(t *testing.T) {
	config.Load()

	userID := uuid.New()
	token, err := GenerateToken(userID, "alice@example.com")
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "a-different-secret"
	defer config.Load()

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestRoundToTwo(t *testing.T) {
	assert.Equal(t, 33.33, RoundToTwo(33.333333))
	assert.Equal(t, 33.34, RoundToTwo(33.335))
	assert.Equal(t, -25.0, RoundToTwo(-25.0000001))
	assert.Equal(t, 0.0, RoundToTwo(0))
}
