package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"research-backend/internal/shared/config"
	"research-backend/internal/shared/metrics"
	"research-backend/internal/shared/server/middleware"
	"research-backend/internal/shared/server/respond"
	"research-backend/internal/shared/telemetry"
)

const (
	rateGroupDefault  = "DEFAULT"
	rateGroupGenerate = "GENERATE"
	rateGroupExport   = "EXPORT"

	// Reads and note edits get this many times the generate/export allowance.
	defaultRateMultiplier = 10
	// One client IP may spend this many sessions' allowance in total.
	clientRateMultiplier = 10
)

// RouteRegistrar is implemented by every feature handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries what the router needs from bootstrap.
type RouterDeps struct {
	Config   config.Config
	Health   gin.HandlerFunc
	Handlers []RouteRegistrar
	Limiter  *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	// Forwarded headers are honored only from configured proxies; ClientIP keys rate limits.
	if err := r.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		telemetry.Warn("router.trusted_proxies_invalid", map[string]any{"error": err.Error()})
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Session(),
		middleware.RateLimit(rateLimitConfig(deps.Config, deps.Limiter)),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	health := deps.Health
	if health == nil {
		health = func(c *gin.Context) {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
		}
	}
	api.GET("/health", health)
	for _, h := range deps.Handlers {
		if h != nil {
			h.RegisterRoutes(api)
		}
	}

	return r
}

func rateLimitConfig(cfg config.Config, limiter *middleware.RateLimiter) middleware.RateLimitConfig {
	strict := middleware.RateLimitRule{Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst}
	return middleware.RateLimitConfig{
		DefaultGroup:     rateGroupDefault,
		GroupFor:         rateGroupFor,
		Limiter:          limiter,
		ClientMultiplier: clientRateMultiplier,
		Rules: map[string]middleware.RateLimitRule{
			rateGroupDefault: {
				Rate:  cfg.RateLimitRPS * defaultRateMultiplier,
				Burst: cfg.RateLimitBurst * defaultRateMultiplier,
			},
			rateGroupGenerate: strict,
			rateGroupExport:   strict,
		},
	}
}

func rateGroupFor(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return rateGroupDefault
	}
	switch c.FullPath() {
	case "/api/v1/research/generate":
		return rateGroupGenerate
	case "/api/v1/research/current/export", "/api/v1/notes/:id/export":
		return rateGroupExport
	default:
		return rateGroupDefault
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
