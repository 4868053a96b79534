package models_test

import (
	"testing"

	"github.com/condofacil/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestUserPassword(t *testing.T) {
	user := models.User{Email: "sindico@example.com"}

	assert.NoError(t, user.SetPassword("hunter2hunter2"))
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash, "the password must not be stored in plain text")

	assert.True(t, user.CheckPassword("hunter2hunter2"))
	assert.False(t, user.CheckPassword("wrong"))
}

func (suite *TestSuiteStandard) TestUserEmailNormalization() {
	user := models.User{Email: " Sindico@Example.com ", Role: models.RoleManager}
	suite.Require().NoError(models.DB.Create(&user).Error)

	assert.Equal(suite.T(), "sindico@example.com", user.Email)

	found, err := models.UserByEmail(models.DB, "SINDICO@example.com")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID, found.ID)
}

func (suite *TestSuiteStandard) TestUserEmailUnique() {
	user := models.User{Email: "sindico@example.com", Role: models.RoleManager}
	suite.Require().NoError(models.DB.Create(&user).Error)

	duplicate := models.User{Email: "sindico@example.com", Role: models.RoleResident}
	err := models.DB.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrUserEmailNotUnique)
}
