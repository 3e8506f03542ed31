package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habitual/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/habitual/internal/core/services"
)

const healthCheckTimeout = 2 * time.Second

type RouterDependencies struct {
	AuthHandler       *AuthHandler
	HabitHandler      *HabitHandler
	CompletionHandler *CompletionHandler
	StatsHandler      *StatsHandler
	MotivationHandler *MotivationHandler
	TokenService      *services.TokenService

	// DB and Redis are optional; nil reports the component as disabled.
	DB    *sqlx.DB
	Redis *redis.Client

	Logger          *zap.Logger
	DefaultLocation *time.Location
	RateLimit       int
	RateWindow      time.Duration
	StartTime       time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Authorization", "Content-Type", middleware.TimezoneHeader},
		ExposeHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	}))

	if deps.Redis != nil && deps.RateLimit > 0 {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, deps.RateWindow, deps.Logger))
	}

	router.GET("/health", healthHandler(deps))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.Timezone(deps.DefaultLocation))

	deps.AuthHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.TokenService))
	{
		deps.HabitHandler.RegisterRoutes(protected)
		deps.CompletionHandler.RegisterRoutes(protected)
		deps.StatsHandler.RegisterRoutes(protected)
		deps.MotivationHandler.RegisterRoutes(protected)
	}

	return router
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
	Uptime   string `json:"uptime"`
}

// healthHandler godoc
// @Summary      Liveness and dependency status
// @Tags         system
// @Produce      json
// @Success      200  {object}  healthResponse
// @Failure      503  {object}  healthResponse
// @Router       /health [get]
func healthHandler(deps RouterDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		res := healthResponse{
			Status:   "ok",
			Database: "disabled",
			Redis:    "disabled",
			Uptime:   time.Since(deps.StartTime).Round(time.Second).String(),
		}

		if deps.DB != nil {
			res.Database = "connected"
			if err := deps.DB.PingContext(ctx); err != nil {
				res.Database = "unreachable"
			}
		}
		if deps.Redis != nil {
			res.Redis = "connected"
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				res.Redis = "unreachable"
			}
		}

		status := http.StatusOK
		if res.Database == "unreachable" || res.Redis == "unreachable" {
			res.Status = "degraded"
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, res)
	}
}
