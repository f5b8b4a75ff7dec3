package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/calcly/calculator-api/internal/api/handler"
	"github.com/calcly/calculator-api/internal/api/middleware"
	"github.com/calcly/calculator-api/internal/core/service"
	mongodb "github.com/calcly/calculator-api/internal/infrastructure/db/mongo"
	redisdb "github.com/calcly/calculator-api/internal/infrastructure/db/redis"
	httphandlers "github.com/calcly/calculator-api/internal/infrastructure/http/handlers"
	"github.com/calcly/calculator-api/internal/pkg/config"
	"github.com/calcly/calculator-api/internal/pkg/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("calculator"))

	// --- Dependencies ---
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)

	userRepo := mongodb.NewUserRepository(db)
	calcRepo := mongodb.NewCalculationRepository(db)
	userCache := redisdb.NewUserCache(rdb)
	userLookup := redisdb.NewUserLookup(userCache, userRepo)

	authService := service.NewAuthService(userRepo, issuer, log)
	calcService := service.NewCalculationService(calcRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler()
	calcHandler := handler.NewCalculationHandler(calcService)

	requireAuth := middleware.Authenticate(issuer, userLookup)
	optionalAuth := middleware.OptionalAuthenticate(issuer, userLookup)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- API v1 ---
	v1 := e.Group("/v1")

	v1.GET("/users/me", userHandler.Me, requireAuth, middleware.ActiveOnly())

	calc := v1.Group("/calculations", optionalAuth)
	calc.GET("", calcHandler.List)
	calc.POST("", calcHandler.Create)
	calc.GET("/:id", calcHandler.Get)
	calc.PUT("/:id", calcHandler.Update)
	calc.PATCH("/:id", calcHandler.Update)
	calc.DELETE("/:id", calcHandler.Delete)

	v1.POST("/compute/:operation", calcHandler.Compute)

	// --- Health probes (no auth required) ---
	healthHandler := httphandlers.NewHealthHandler()
	healthDepsHandler := httphandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
