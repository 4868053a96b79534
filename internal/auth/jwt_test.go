package auth_test

import (
	"testing"

	"github.com/condofacil/backend/internal/auth"
	"github.com/condofacil/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	service := auth.NewJWTService("test-secret", "condofacil-test")

	user := models.User{
		Email:     "sindico@example.com",
		Role:      models.RoleManager,
		Matricula: "12345678100",
	}
	user.ID = uuid.New()

	token, err := service.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "sindico@example.com", claims.Email)
	assert.Equal(t, models.RoleManager, claims.Role)
	assert.Equal(t, "12345678100", claims.Matricula)
	assert.Equal(t, "condofacil-test", claims.Issuer)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := auth.NewJWTService("test-secret", "condofacil-test").GenerateToken(models.User{Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = auth.NewJWTService("other-secret", "condofacil-test").ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	service := auth.NewJWTService("test-secret", "condofacil-test")

	_, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)
}
