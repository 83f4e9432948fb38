package route

import (
	"net/http"
	"time"

	"MenuMate/controllers"
	"MenuMate/handlers"
	"MenuMate/middleware"
	"MenuMate/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies are the services the routes are served from.
type Dependencies struct {
	Query       *services.MenuQueryService
	Acquisition *services.AcquisitionService
	Schedule    *services.ScheduleEvaluator
	Preferences *services.PreferenceService
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(deps Dependencies, logger *zap.Logger, allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.ErrorHandlerMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type", middleware.UserIDHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !containsWildcard(allowOrigins),
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	RegisterRoutes(r, deps)
	return r
}

// RegisterRoutes initializes all routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	menuController := controllers.NewMenuController(deps.Query, deps.Acquisition, deps.Preferences)
	statusController := controllers.NewStatusController(deps.Schedule)
	hallController := controllers.NewHallController()
	preferenceController := controllers.NewPreferenceController(deps.Preferences)

	v1Routes := router.Group("/v1")
	v1Routes.Use(middleware.UserIdentity())
	{
		handlers.RegisterMenuRoutes(v1Routes, menuController)
		handlers.RegisterStatusRoutes(v1Routes, statusController)
		handlers.RegisterHallRoutes(v1Routes, hallController)
		handlers.RegisterPreferenceRoutes(v1Routes, preferenceController)
	}
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
