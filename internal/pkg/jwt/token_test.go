package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/nebengtrip/internal/pkg/models"
)

func tokenTestConfig() *models.Config {
	cfg := &models.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 60
	cfg.JWT.Issuer = "nebengtrip-test"
	return cfg
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := tokenTestConfig()
	userID := uuid.New()

	token, expiresAt, err := GenerateToken(userID, models.RoleDriver, cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	session, err := ValidateToken(token, cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, userID, session.UserID)
	assert.Equal(t, models.RoleDriver, session.Role)
	assert.True(t, session.IsDriver())
}

func TestValidateToken_WrongSecret(t *testing.T) {
	cfg := tokenTestConfig()

	token, _, err := GenerateToken(uuid.New(), models.RoleRider, cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, "different-secret")
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", "test-secret")
	assert.Error(t, err)
}
