package router

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	docs "github.com/condofacil/backend/api"
	"github.com/condofacil/backend/internal/auth"
	"github.com/condofacil/backend/internal/controllers/healthz"
	v1 "github.com/condofacil/backend/internal/controllers/v1"
	"github.com/condofacil/backend/internal/httperror"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Config sets up the router and all middlewares. The returned teardown
// function releases global resources, which tests need to set up a fresh
// router.
func Config(url *url.URL) (*gin.Engine, func(), error) {
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(MetricsMiddleware())
	r.Use(ErrorsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, httperror.NewFromString("This HTTP method is not allowed for the endpoint you called"))
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("CORS Allowed Origins", allowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "PUT", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	if err := registerPrometheusMetrics(); err != nil {
		return nil, func() {}, err
	}

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "CondoFácil"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "The backend for CondoFácil, a multi-tenant condominium management platform."

	return r, func() { unregisterPrometheusMetrics() }, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
// Separating this from Config() allows us to attach it to different paths for
// different use cases, e.g. the standalone version.
func AttachRoutes(co v1.Controller, group *gin.RouterGroup) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	healthz.RegisterRoutes(group.Group("/healthz"))

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.RouteRegister(group, "debug/pprof")
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 setup
	apiV1 := group.Group("/v1")
	{
		apiV1.GET("", GetV1)
		apiV1.OPTIONS("", OptionsV1)
	}

	// Public routes: signup and session management
	co.RegisterAuthRoutes(apiV1.Group("/auth"))

	// Everything else requires a session token
	protected := apiV1.Group("")
	protected.Use(auth.Middleware(co.JWT))

	v1.RegisterCondominiumRoutes(apiV1.Group("/condominiums"), protected.Group("/condominiums"))
	v1.RegisterPlanRoutes(protected.Group("/plans"))
	v1.RegisterResidentRoutes(protected.Group("/residents"))
	v1.RegisterIncomeRoutes(protected.Group("/incomes"))
	v1.RegisterExpenseRoutes(protected.Group("/expenses"))
	v1.RegisterBalanceRoutes(protected.Group("/balances"))
	v1.RegisterChangelogRoutes(protected.Group("/changelogs"))
	v1.RegisterReservationRoutes(protected.Group("/reservations"))
	v1.RegisterDocumentRoutes(protected.Group("/documents"))
	co.RegisterAnnouncementRoutes(protected.Group("/announcements"))
	co.RegisterReportRoutes(protected.Group("/reports"))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs    string `json:"docs" example:"https://example.com/api/docs/index.html"` // Swagger API documentation
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"`      // Healthz endpoint
	Version string `json:"version" example:"https://example.com/api/version"`      // Endpoint returning the version of the backend
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"`      // Endpoint returning Prometheus metrics
	V1      string `json:"v1" example:"https://example.com/api/v1"`                // List endpoint for all v1 endpoints
}

// GetRoot returns the link list for the API root
//
//	@Summary		API root
//	@Description	Entrypoint for the API, listing all endpoints
//	@Tags			General
//	@Success		200	{object}	RootResponse
//	@Router			/ [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(v1.ContextURL)

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:    url + "/docs/index.html",
			Healthz: url + "/healthz",
			Version: url + "/version",
			Metrics: url + "/metrics",
			V1:      url + "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// GetVersion returns the API version object
//
//	@Summary		API version
//	@Description	Returns the software version of the API
//	@Tags			General
//	@Success		200	{object}	VersionResponse
//	@Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// OptionsRoot returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/ [options]
func OptionsRoot(c *gin.Context) {
	c.Header("allow", "GET")
	c.Status(http.StatusNoContent)
}

// OptionsVersion returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/version [options]
func OptionsVersion(c *gin.Context) {
	c.Header("allow", "GET")
	c.Status(http.StatusNoContent)
}

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Auth          string `json:"auth" example:"https://example.com/api/v1/auth"`                   // URL of the session endpoints
	Condominiums  string `json:"condominiums" example:"https://example.com/api/v1/condominiums"`   // URL of condominium list endpoint
	Plans         string `json:"plans" example:"https://example.com/api/v1/plans"`                 // URL of plan list endpoint
	Residents     string `json:"residents" example:"https://example.com/api/v1/residents"`         // URL of resident list endpoint
	Incomes       string `json:"incomes" example:"https://example.com/api/v1/incomes"`             // URL of income list endpoint
	Expenses      string `json:"expenses" example:"https://example.com/api/v1/expenses"`           // URL of expense list endpoint
	Balances      string `json:"balances" example:"https://example.com/api/v1/balances"`           // URL of balance endpoints
	Changelogs    string `json:"changelogs" example:"https://example.com/api/v1/changelogs"`       // URL of change log endpoints
	Announcements string `json:"announcements" example:"https://example.com/api/v1/announcements"` // URL of announcement list endpoint
	Reservations  string `json:"reservations" example:"https://example.com/api/v1/reservations"`   // URL of reservation list endpoint
	Documents     string `json:"documents" example:"https://example.com/api/v1/documents"`         // URL of document list endpoint
	Reports       string `json:"reports" example:"https://example.com/api/v1/reports"`             // URL of report endpoints
}

// GetV1 returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	V1Response
//	@Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(v1.ContextURL)

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Auth:          url + "/v1/auth",
			Condominiums:  url + "/v1/condominiums",
			Plans:         url + "/v1/plans",
			Residents:     url + "/v1/residents",
			Incomes:       url + "/v1/incomes",
			Expenses:      url + "/v1/expenses",
			Balances:      url + "/v1/balances",
			Changelogs:    url + "/v1/changelogs",
			Announcements: url + "/v1/announcements",
			Reservations:  url + "/v1/reservations",
			Documents:     url + "/v1/documents",
			Reports:       url + "/v1/reports",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	c.Header("allow", "GET")
	c.Status(http.StatusNoContent)
}
