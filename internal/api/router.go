package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	redisclient "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/vwsr/fleet-api/internal/api/handler"
	"github.com/vwsr/fleet-api/internal/api/middleware"
	"github.com/vwsr/fleet-api/internal/core/service"
	"github.com/vwsr/fleet-api/internal/infrastructure/config"
	"github.com/vwsr/fleet-api/internal/infrastructure/db/mysql"
	"github.com/vwsr/fleet-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, rdb *redisclient.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("fleet"))

	// --- Dependencies ---
	issuer := service.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience,
		cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	authService := service.NewAuthService(mysql.NewAccountRepository(db), redis.NewTokenCache(rdb), issuer, log)
	machineService := service.NewMachineService(mysql.NewMachineRepository(db), log)
	companyService := service.NewCompanyService(mysql.NewCompanyRepository(db), log)
	requestService := service.NewRequestService(mysql.NewRequestRepository(db), log)
	dashboardService := service.NewDashboardService(mysql.NewDashboardRepository(db), log)
	monitoringService := service.NewMonitoringService(mysql.NewMonitoringRepository(db), service.NewStatusGenerator(), log)

	authHandler := handler.NewAuthHandler(authService)
	machineHandler := handler.NewMachineHandler(machineService)
	companyHandler := handler.NewCompanyHandler(companyService)
	mobileHandler := handler.NewMobileHandler(requestService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	monitoringHandler := handler.NewMonitoringHandler(monitoringService)

	authMiddleware := middleware.Auth(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)

	// --- Auth routes (no token required) ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh-token", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)

	// --- Protected API ---
	apiGroup := e.Group("/api", authMiddleware)

	machines := apiGroup.Group("/vending-machines")
	machines.GET("", machineHandler.List)
	machines.POST("", machineHandler.Create)
	machines.GET("/:id", machineHandler.Get)
	machines.PUT("/:id", machineHandler.Update)
	machines.DELETE("/:id", machineHandler.Delete)
	machines.POST("/:id/unlink-modem", machineHandler.UnlinkModem)

	companies := apiGroup.Group("/companies")
	companies.GET("", companyHandler.List)
	companies.POST("", companyHandler.Create)
	companies.GET("/:id", companyHandler.Get)
	companies.PUT("/:id", companyHandler.Update)
	companies.DELETE("/:id", companyHandler.Delete)

	apiGroup.GET("/dashboard", dashboardHandler.Overview)
	apiGroup.GET("/monitoring/machines", monitoringHandler.Machines)

	mobile := apiGroup.Group("/mobile/requests")
	mobile.GET("", mobileHandler.List)
	mobile.GET("/:id", mobileHandler.Get)
	mobile.GET("/:id/history", mobileHandler.History)
	mobile.POST("/:id/accept", mobileHandler.Accept)
	mobile.POST("/:id/decline", mobileHandler.Decline)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
