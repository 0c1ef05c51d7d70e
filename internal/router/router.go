package router

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tripsplit/backend/internal/controllers/healthz"
	v1 "github.com/tripsplit/backend/internal/controllers/v1"
	"github.com/tripsplit/backend/internal/httputil"
	"github.com/tripsplit/backend/internal/models"
)

// This is set at build time via -ldflags.
var version = "0.0.0"

// Config sets up the router with all middlewares. The returned teardown
// function releases global resources and must be called when the router
// is discarded.
func Config(url *url.URL) (*gin.Engine, func(), error) {
	// Set up the router and middlewares
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

	err := registerPrometheusMetrics()
	if err != nil {
		return nil, nil, err
	}
	r.Use(MetricsMiddleware())

	teardown := func() {
		unregisterPrometheusMetrics()
	}

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("CORS Allowed Origins", allowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	v1.SetVersion(version)

	return r, teardown, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
// Separating this from Config() allows us to attach it to different
// paths for different use cases, e.g. the standalone version.
func AttachRoutes(group *gin.RouterGroup) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)

	healthz.RegisterRoutes(group.Group("/healthz"))

	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.RouteRegister(group, "debug/pprof")
	}

	// API v1 setup
	apiV1 := group.Group("/v1")
	{
		apiV1.GET("", GetV1)
		apiV1.DELETE("", v1.Cleanup)
		apiV1.OPTIONS("", OptionsV1)
	}

	v1.RegisterPersonRoutes(apiV1.Group("/persons"))
	v1.RegisterGroupRoutes(apiV1.Group("/groups"))
	v1.RegisterExpenseRoutes(apiV1.Group("/expenses"))
	v1.RegisterPaymentRoutes(apiV1.Group("/payments"))
	v1.RegisterBalanceRoutes(apiV1.Group("/balances"))
	v1.RegisterSettlementRoutes(apiV1.Group("/settlements"))
	v1.RegisterEntityRoutes(apiV1.Group("/entities"))
	v1.RegisterMatchRuleRoutes(apiV1.Group("/match-rules"))
	v1.RegisterExportRoutes(apiV1.Group("/export"))
	v1.RegisterImportRoutes(apiV1.Group("/import"))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"` // Endpoint returning the health of the backend
	Version string `json:"version" example:"https://example.com/api/version"` // Endpoint returning the version of the backend
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"` // Endpoint returning Prometheus metrics
	V1      string `json:"v1" example:"https://example.com/api/v1"`           // List endpoint for all v1 endpoints
}

// GetRoot returns the link list for the API root
func GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
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
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Persons     string `json:"persons" example:"https://example.com/api/v1/persons"`         // URL of person list endpoint
	Groups      string `json:"groups" example:"https://example.com/api/v1/groups"`           // URL of group list endpoint
	Expenses    string `json:"expenses" example:"https://example.com/api/v1/expenses"`       // URL of expense list endpoint
	Payments    string `json:"payments" example:"https://example.com/api/v1/payments"`       // URL of payment list endpoint
	Balances    string `json:"balances" example:"https://example.com/api/v1/balances"`       // URL of the balance endpoint
	Settlements string `json:"settlements" example:"https://example.com/api/v1/settlements"` // URL of the settlement plan endpoint
	Entities    string `json:"entities" example:"https://example.com/api/v1/entities"`       // URL of the entity list endpoint
	MatchRules  string `json:"matchRules" example:"https://example.com/api/v1/match-rules"`  // URL of the match rule list endpoint
	Export      string `json:"export" example:"https://example.com/api/v1/export"`           // URL of the export endpoint
	Import      string `json:"import" example:"https://example.com/api/v1/import"`           // URL of the import endpoint
}

// GetV1 returns the link list for v1
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Persons:     url + "/v1/persons",
			Groups:      url + "/v1/groups",
			Expenses:    url + "/v1/expenses",
			Payments:    url + "/v1/payments",
			Balances:    url + "/v1/balances",
			Settlements: url + "/v1/settlements",
			Entities:    url + "/v1/entities",
			MatchRules:  url + "/v1/match-rules",
			Export:      url + "/v1/export",
			Import:      url + "/v1/import",
		},
	})
}

func OptionsV1(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
