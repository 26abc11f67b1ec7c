package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/dbpool"
	"github.com/credtrailhq/credtrail/internal/middleware"
	"github.com/credtrailhq/credtrail/internal/models"
	"github.com/credtrailhq/credtrail/internal/security"
	"github.com/credtrailhq/credtrail/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log            *logrus.Logger
	Pool           *dbpool.Pool
	Hub            *ws.Hub
	Tokens         *security.TokenService
	UserLookup     middleware.UserLookup
	Auth           AuthService
	Providers      ProviderService
	Licenses       LicenseService
	Phases         PhaseService
	Facilities     FacilityService
	Communications CommunicationService
	Documents      DocumentService
	Accounts       UserService
	Timeline       TimelineService
	AuditAdmin     AuditMaintenanceService
	Importer       ImportService
	Stats          StatsService
	Search         SearchService
	CORSOrigins    []string
	Version        string
	RateLimitRPS   int
	RateLimitBurst int
}

// Router-level limits.
const (
	maxBodySize      = 10 << 20 // 10 MB
	defaultRateLimit = 100      // requests per second per IP
	defaultRateBurst = 200      // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	rps := deps.RateLimitRPS
	if rps <= 0 {
		rps = defaultRateLimit
	}

	burst := deps.RateLimitBurst
	if burst <= 0 {
		burst = defaultRateBurst
	}

	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rps, burst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	auth := NewAuthHandler(deps.Auth, log)
	providers := NewProviderHandler(deps.Providers, log)
	licenses := NewLicenseHandler(deps.Licenses, log)
	phases := NewPhaseHandler(deps.Phases, log)
	facilities := NewFacilityHandler(deps.Facilities, log)
	comms := NewCommunicationHandler(deps.Communications, log)
	documents := NewDocumentHandler(deps.Documents, log)
	audit := NewAuditHandler(deps.Timeline, log)
	auditAdmin := NewAuditAdminHandler(deps.AuditAdmin, log)
	admin := NewAdminHandler(deps.Accounts, deps.Importer, log)
	stats := NewStatsHandler(deps.Stats, log)
	search := NewSearchHandler(deps.Search, log)

	// Login and refresh are the only unauthenticated API routes. The
	// global rate limiter plus the brute-force guard inside the auth
	// service bound credential stuffing.
	api.POST("/auth/login", auth.Login)
	api.POST("/auth/refresh", auth.Refresh)

	lookup := middleware.NewCachedUserLookup(ctx, deps.UserLookup)

	// The WebSocket endpoint authenticates in its handler: browsers
	// cannot set an Authorization header on WebSocket requests.
	api.GET("/ws", wsHandler(ctx, log, deps.Hub, deps.CORSOrigins, deps.Tokens, lookup))

	// Everything else requires a valid access token.
	authed := api.Group("", middleware.Auth(deps.Tokens, lookup, log))

	authed.GET("/me", auth.Me)

	// Reads are open to every role.
	authed.GET("/providers", providers.List)
	authed.GET("/providers/:id", providers.Get)
	authed.GET("/providers/:id/history", audit.ProviderHistory)
	authed.GET("/providers/:id/licenses", licenses.List)
	authed.GET("/providers/:id/phases", phases.List)
	authed.GET("/facilities", facilities.List)
	authed.GET("/facilities/:id", facilities.Get)
	authed.GET("/communications", comms.List)
	authed.GET("/communications/:id", comms.Get)
	authed.GET("/documents", documents.List)
	authed.GET("/documents/:id", documents.Get)
	authed.GET("/audit", audit.Timeline)
	authed.GET("/audit/:id", audit.Detail)
	authed.GET("/stats", stats.GetStats)
	authed.GET("/search", search.Search)

	// Mutations require the coordinator role.
	coord := authed.Group("", middleware.RequireRole(models.RoleCoordinator))
	coord.POST("/providers", providers.Create)
	coord.PUT("/providers/:id", providers.Update)
	coord.DELETE("/providers/:id", providers.Delete)
	coord.POST("/providers/:id/licenses", licenses.Create)
	coord.PUT("/providers/:id/licenses/:lid", licenses.Update)
	coord.DELETE("/providers/:id/licenses/:lid", licenses.Delete)
	coord.POST("/providers/:id/phases", phases.Create)
	coord.PUT("/providers/:id/phases/:pid", phases.Update)
	coord.DELETE("/providers/:id/phases/:pid", phases.Delete)
	coord.POST("/facilities", facilities.Create)
	coord.PUT("/facilities/:id", facilities.Update)
	coord.DELETE("/facilities/:id", facilities.Delete)
	coord.POST("/communications", comms.Create)
	coord.PUT("/communications/:id", comms.Update)
	coord.DELETE("/communications/:id", comms.Delete)
	coord.POST("/documents", documents.Create)
	coord.PUT("/documents/:id", documents.Update)
	coord.DELETE("/documents/:id", documents.Delete)

	// Admin-only operations.
	adminGroup := authed.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	adminGroup.GET("/users", admin.ListUsers)
	adminGroup.POST("/users", admin.CreateUser)
	adminGroup.PATCH("/users/:id", admin.UpdateUser)
	adminGroup.POST("/audit/purge", auditAdmin.Purge)
	adminGroup.GET("/audit/export", auditAdmin.Export)
	adminGroup.POST("/import/providers", admin.ImportProviders)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)

	// Health endpoints live outside the versioned API prefix.
	health := NewHealthHandler(deps.Pool, deps.Hub, deps.Log, deps.Version)
	r.GET("/healthz", health.Liveness)
	r.GET("/readyz", health.Readiness)

	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
