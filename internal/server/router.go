// Package server assembles the HTTP surface: middleware, handlers and routes.
package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"spendlog/internal/config"
	"spendlog/internal/handlers"
	"spendlog/internal/metrics"
	"spendlog/internal/middleware"
	"spendlog/internal/services"
	"spendlog/internal/storage"

	_ "spendlog/internal/docs" // Import swagger docs
)

// Options carries everything NewRouter wires together.
type Options struct {
	Config  *config.Config
	Store   storage.Store
	Backend string
	// Metrics is optional; without it /metrics is not served.
	Metrics *metrics.Metrics
}

// NewRouter builds the gin engine serving the expense API.
func NewRouter(opts Options) *gin.Engine {
	cfg := opts.Config

	// Initialize services
	userService := services.NewUserService(opts.Store)
	expenseService := services.NewExpenseService(opts.Store, cfg.DefaultUserID)
	tokens := middleware.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpirationDur)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tokens)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	categoryHandler := handlers.NewCategoryHandler()
	healthHandler := handlers.NewHealthHandler(opts.Store, opts.Backend)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.CORS())
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.GET("/health", healthHandler.Health)
	api.GET("/categories", categoryHandler.ListCategories)

	// Public routes
	api.POST("/users", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Routes acting on behalf of a user
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokens, cfg.AuthEnabled, cfg.DefaultUserID))

	protected.GET("/users/:id", authHandler.GetUser)

	expenses := protected.Group("/expenses")
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("/recent", expenseHandler.RecentExpenses)
	expenses.GET("/stats/summary", expenseHandler.GetStatistics)
	expenses.GET("/export/csv", expenseHandler.ExportCSV)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	return router
}
