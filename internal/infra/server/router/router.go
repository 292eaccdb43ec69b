// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/integration/entrypoint/controller"
	"github.com/pocketledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	accountController     *controller.AccountController
	transactionController *controller.TransactionController
	categoryController    *controller.CategoryController
	budgetController      *controller.BudgetController
	dashboardController   *controller.DashboardController
	reportController      *controller.ReportController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	accountController *controller.AccountController,
	transactionController *controller.TransactionController,
	categoryController *controller.CategoryController,
	budgetController *controller.BudgetController,
	dashboardController *controller.DashboardController,
	reportController *controller.ReportController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		accountController:     accountController,
		transactionController: transactionController,
		categoryController:    categoryController,
		budgetController:      budgetController,
		dashboardController:   dashboardController,
		reportController:      reportController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	{
		limited := auth.Group("")
		if r.loginRateLimiter != nil {
			limited.Use(r.loginRateLimiter.Middleware())
		}
		limited.POST("/register", r.authController.Register)
		limited.POST("/login", r.authController.Login)
		limited.POST("/refresh", r.authController.RefreshToken)

		auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
	}

	// Everything below requires authentication
	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	protected.GET("/me", r.authController.Me)

	accounts := protected.Group("/accounts")
	{
		accounts.GET("", r.accountController.List)
		accounts.POST("", r.accountController.Create)
		accounts.PUT("/:id", r.accountController.Update)
		accounts.DELETE("/:id", r.accountController.Delete)
	}

	transactions := protected.Group("/transactions")
	{
		transactions.GET("", r.transactionController.List)
		transactions.POST("", r.transactionController.Create)
		transactions.PUT("/:id", r.transactionController.Update)
		transactions.DELETE("/:id", r.transactionController.Delete)
	}

	protected.GET("/categories", r.categoryController.List)

	budgets := protected.Group("/budgets")
	{
		budgets.GET("", r.budgetController.List)
		budgets.PUT("/:categoryId", r.budgetController.Set)
		budgets.DELETE("/:categoryId", r.budgetController.Delete)
	}

	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("/summary", r.dashboardController.Summary)
		dashboard.GET("/budgets", r.dashboardController.Budgets)
		dashboard.GET("/trends", r.dashboardController.Trends)
	}

	reports := protected.Group("/reports")
	{
		reports.GET("/advice", r.reportController.Advice)
		reports.GET("/transactions/export", r.reportController.Export)
		reports.POST("/digest", r.reportController.Digest)
	}
}
