// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/infra/metrics"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
)

// Controllers groups the HTTP handlers mounted by the router.
type Controllers struct {
	Health      *controller.HealthController
	Fixed       *controller.FixedController
	Template    *controller.TemplateController
	Summary     *controller.SummaryController
	Transaction *controller.TransactionController
	Profile     *controller.ProfileController
	Category    *controller.CategoryController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	controllers      Controllers
	authMiddleware   *middleware.AuthMiddleware
	apiRateLimiter   *middleware.RateLimiter
	metrics          *metrics.Metrics
	corsAllowOrigins []string
}

// NewRouter creates a new router instance with all dependencies.
// A nil rate limiter disables request limiting.
func NewRouter(
	controllers Controllers,
	authMiddleware *middleware.AuthMiddleware,
	apiRateLimiter *middleware.RateLimiter,
	m *metrics.Metrics,
	corsAllowOrigins []string,
) *Router {
	return &Router{
		controllers:      controllers,
		authMiddleware:   authMiddleware,
		apiRateLimiter:   apiRateLimiter,
		metrics:          m,
		corsAllowOrigins: corsAllowOrigins,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	r.engine.Use(requestid.New())
	// cors.New panics on an empty origin list.
	if len(r.corsAllowOrigins) > 0 {
		r.engine.Use(cors.New(cors.Config{
			AllowOrigins:     r.corsAllowOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.engine.Use(middleware.RequestLogger())
	if r.metrics != nil {
		r.engine.Use(r.metrics.Middleware())
	}

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and metrics endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.controllers.Health.Check)
	if r.metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}
}

// setupAPIRoutes configures the main API routes. Every route requires a
// bearer token.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())
	if r.apiRateLimiter != nil {
		v1.Use(r.apiRateLimiter.Middleware())
	}

	fixed := v1.Group("/fixed")
	{
		fixed.POST("/ensure", r.controllers.Fixed.Ensure)
		fixed.GET("", r.controllers.Fixed.List)
		fixed.POST("/:id/pay", r.controllers.Fixed.Pay)
		fixed.POST("/:id/unpay", r.controllers.Fixed.Unpay)
		fixed.DELETE("/:id", r.controllers.Fixed.Delete)
	}

	templates := v1.Group("/templates")
	{
		templates.GET("", r.controllers.Template.List)
		templates.POST("", r.controllers.Template.Create)
		templates.PATCH("/:id", r.controllers.Template.Update)
		templates.DELETE("/:id", r.controllers.Template.Deactivate)
	}

	v1.GET("/summary", r.controllers.Summary.Summary)
	v1.GET("/analytics/monthly", r.controllers.Summary.Analytics)

	transactions := v1.Group("/transactions")
	{
		transactions.GET("", r.controllers.Transaction.List)
		transactions.POST("", r.controllers.Transaction.Create)
		transactions.DELETE("/:id", r.controllers.Transaction.Delete)
	}
	v1.POST("/expenses", r.controllers.Transaction.Create)

	profiles := v1.Group("/profiles")
	{
		profiles.GET("/me", r.controllers.Profile.Get)
		profiles.PUT("/me", r.controllers.Profile.Update)
		profiles.PATCH("/me", r.controllers.Profile.Update)
	}

	v1.GET("/categories", r.controllers.Category.List)
}
