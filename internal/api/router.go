package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	_ "github.com/sirpyerre/pantry-api/docs"
	"github.com/sirpyerre/pantry-api/internal/api/handler"
	"github.com/sirpyerre/pantry-api/internal/api/middleware"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
	"github.com/sirpyerre/pantry-api/internal/infrastructure/http/handlers"
)

// Deps carries everything the HTTP layer needs. Mongo and Redis are optional.
type Deps struct {
	Logger zerolog.Logger

	Tokens      ports.TokenCodec
	Auth        ports.AuthService
	Users       ports.UserService
	Comments    ports.CommentService
	Ingredients ports.IngredientService
	Roles       ports.RoleService

	Postgres *gorm.DB
	Mongo    *mongo.Client
	Redis    *redis.Client

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "pantry",
		Registerer: registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Postgres, deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API ---
	requireAuth := middleware.Auth(deps.Tokens)
	api := e.Group("/api")

	authHandler := handler.NewAuthHandler(deps.Auth)
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.GET("/profile", authHandler.Profile, requireAuth)

	userHandler := handler.NewUserHandler(deps.Users)
	users := api.Group("/users")
	users.POST("", userHandler.Register)
	users.GET("", userHandler.List, requireAuth)
	users.GET("/:id", userHandler.Get, requireAuth)
	users.PUT("/:id", userHandler.Update, requireAuth)
	users.DELETE("/:id", userHandler.Delete, requireAuth)

	commentHandler := handler.NewCommentHandler(deps.Comments)
	comments := api.Group("/comments", requireAuth)
	comments.POST("", commentHandler.Create)
	comments.GET("", commentHandler.List)
	comments.GET("/user/:user_id", commentHandler.ListByUser)
	comments.GET("/:id", commentHandler.Get)
	comments.PUT("/:id", commentHandler.Update)
	comments.DELETE("/:id", commentHandler.Delete)

	ingredientHandler := handler.NewIngredientHandler(deps.Ingredients)
	ingredients := api.Group("/ingredients", requireAuth)
	ingredients.POST("", ingredientHandler.Create)
	ingredients.GET("", ingredientHandler.List)
	ingredients.GET("/:id", ingredientHandler.Get)
	ingredients.PUT("/:id", ingredientHandler.Update)
	ingredients.DELETE("/:id", ingredientHandler.Delete)

	roleHandler := handler.NewRoleHandler(deps.Roles)
	roles := api.Group("/roles", requireAuth)
	roles.POST("", roleHandler.Create)
	roles.GET("", roleHandler.List)
	roles.GET("/:id", roleHandler.Get)
	roles.PUT("/:id", roleHandler.Update)
	roles.DELETE("/:id", roleHandler.Delete)

	return e
}
