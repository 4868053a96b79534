package v1_test

import (
	"os"
	"testing"

	"github.com/condofacil/backend/internal/models"
	"github.com/condofacil/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TestSuiteStandard struct {
	suite.Suite
}

// Pseudo-test to run the test suite
func TestStandard(t *testing.T) {
	suite.Run(t, new(TestSuiteStandard))
}

func (suite *TestSuiteStandard) SetupSuite() {
	os.Setenv("LOG_FORMAT", "human")
	os.Setenv("GIN_MODE", "release")
	os.Setenv("API_URL", "http://example.com")
}

// SetupTest is called before each test in the suite
func (suite *TestSuiteStandard) SetupTest() {
	suite.Require().NoError(models.Connect(test.TmpFile(suite.T())))
}

// TearDownTest is called after each test in the suite
func (suite *TestSuiteStandard) TearDownTest() {
	sqlDB, err := models.DB.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(sqlDB.Close())
}

// bearer returns request headers carrying a session token for a user with
// the given role and tenant.
func (suite *TestSuiteStandard) bearer(role models.Role, matricula string) map[string]string {
	token, err := test.JWT.GenerateToken(models.User{
		Email:     string(role) + "@example.com",
		Role:      role,
		Matricula: matricula,
	})
	suite.Require().NoError(err)

	return map[string]string{"Authorization": "Bearer " + token}
}

func (suite *TestSuiteStandard) createTestCondominium() models.Condominium {
	condominium := models.Condominium{
		Nome:   "Residencial das Flores",
		CEP:    "12345-678",
		Numero: "100",
		Email:  "sindico@example.com",
	}
	suite.Require().NoError(models.DB.Create(&condominium).Error)

	return condominium
}

func (suite *TestSuiteStandard) createTestPlan(codigo string, valor float64, maxMoradores *int64) models.Plan {
	plan := models.Plan{
		Codigo:       codigo,
		Nome:         "Plano " + codigo,
		Valor:        decimal.NewFromFloat(valor),
		MaxMoradores: maxMoradores,
	}
	suite.Require().NoError(models.DB.Create(&plan).Error)

	return plan
}
