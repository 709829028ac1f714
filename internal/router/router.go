package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/healthvault/health-api/internal/handler"
	"github.com/healthvault/health-api/internal/middleware"
	"github.com/healthvault/health-api/pkg/metrics"
)

// Handler is anything that mounts routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// PublicHandler additionally mounts routes outside the auth boundary.
type PublicHandler interface {
	Handler
	RegisterPublicRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimitEnabled bool
	RateLimitRPS     float64
	RateLimitBurst   int
	CORS             middleware.CORSConfig
}

type Router struct {
	engine  *gin.Engine
	auth    *middleware.AuthMiddleware
	metrics *metrics.Metrics
}

func New(auth *middleware.AuthMiddleware, m *metrics.Metrics, cfg Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{engine: engine, auth: auth, metrics: m}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
		middleware.CORS(cfg.CORS),
	)

	if cfg.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	return r
}

func (r *Router) Engine() *gin.Engine { return r.engine }

// Setup mounts infrastructure endpoints plus all application handlers.
// Public handlers get a slot outside the bearer-token boundary for the
// access-code redemption flow.
func (r *Router) Setup(authH Handler, protected []Handler, public []PublicHandler) {
	r.engine.GET("/health", handler.Health)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")
	authH.RegisterRoutes(api)
	for _, h := range public {
		h.RegisterPublicRoutes(api)
	}

	secured := api.Group("")
	secured.Use(r.auth.RequireAuth())
	for _, h := range protected {
		h.RegisterRoutes(secured)
	}
	for _, h := range public {
		h.RegisterRoutes(secured)
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		elapsed := time.Since(start).Seconds()

		r.metrics.RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		r.metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(elapsed)
		if c.Writer.Status() >= 400 {
			r.metrics.ErrorTotal.WithLabelValues(c.Request.Method, path).Inc()
		}
	}
}
