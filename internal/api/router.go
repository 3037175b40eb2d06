package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/hockeyclub/club-system/docs"
	"github.com/hockeyclub/club-system/internal/api/handler"
	"github.com/hockeyclub/club-system/internal/api/middleware"
	"github.com/hockeyclub/club-system/internal/core/domain"
	"github.com/hockeyclub/club-system/internal/core/ports"
	"github.com/hockeyclub/club-system/internal/core/service"
	"github.com/hockeyclub/club-system/internal/infrastructure/config"
	redisdb "github.com/hockeyclub/club-system/internal/infrastructure/db/redis"
)

// RouterParams carries the wired dependencies into the router. Mongo and
// Redis are nil unless the deployment configured them.
type RouterParams struct {
	Config      *config.Config
	Credentials ports.CredentialStore
	Mongo       *mongo.Database
	Redis       *redis.Client
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(p RouterParams) *echo.Echo {
	cfg := p.Config

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(p.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hockeyclub"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowCredentials: true,
	}))

	// --- Dependencies ---
	tokenService := service.NewJWTTokenService(cfg.JWTSecret, cfg.TokenTTL)
	var denylist ports.TokenDenylist
	if p.Redis != nil {
		denylist = redisdb.NewDenylist(p.Redis)
	}
	authService := service.NewAuthService(p.Credentials, tokenService, tokenService, denylist, cfg.LoginDelay)

	authHandler := handler.NewAuthHandler(authService, p.Log)
	healthHandler := handler.NewHealthHandler(cfg.Env)
	readinessHandler := handler.NewReadinessHandler(p.Mongo, p.Redis)
	dashboardHandler := handler.NewDashboardHandler()
	authRequired := middleware.Auth(tokenService, denylist)

	// --- API routes under the global prefix ---
	g := e.Group("/" + cfg.APIPrefix)
	g.GET("", healthHandler.Health)
	g.GET("/version", healthHandler.Version)
	g.POST("/auth/login", authHandler.Login)
	g.POST("/auth/logout", authHandler.Logout)
	g.GET("/auth/me", authHandler.Me, authRequired)
	g.GET("/admin/dashboard", dashboardHandler.Admin, authRequired, middleware.RBAC(domain.RoleAdmin))
	g.GET("/athlete/dashboard", dashboardHandler.Athlete, authRequired, middleware.RBAC(domain.RoleAthlete))

	// --- Health probes (no auth required, outside the prefix) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	if !cfg.Production() {
		g.GET("/docs/*", echoswagger.WrapHandler)
	}

	return e
}
