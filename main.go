package main

import (
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/condofacil/backend/internal/auth"
	v1 "github.com/condofacil/backend/internal/controllers/v1"
	"github.com/condofacil/backend/internal/functions"
	"github.com/condofacil/backend/internal/models"
	"github.com/condofacil/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title						CondoFácil Backend
// @description				The backend for CondoFácil, a multi-tenant condominium management platform.
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	// Local development reads the environment from a .env file. In
	// production the variables are set on the container.
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	jwtSecret, ok := os.LookupEnv("JWT_SECRET")
	if !ok || jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		apiURL = "http://localhost:8080"
	}

	baseURL, err := url.Parse(apiURL)
	if err != nil {
		log.Fatal().Str("API_URL", apiURL).Msg("API_URL is not a valid URL")
	}

	// Create data directory for the sqlite database
	dataDir := filepath.Join(".", "data")
	if err := os.MkdirAll(dataDir, os.ModePerm); err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := models.Connect("data/gorm.db"); err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, teardown, err := router.Config(baseURL)
	defer teardown()

	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	co := v1.Controller{
		JWT:       auth.NewJWTService(jwtSecret, "condofacil"),
		Functions: functions.NewClient(os.Getenv("FUNCTIONS_BASE_URL")),
	}

	router.AttachRoutes(co, r.Group(baseURL.Path))

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
