package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/opsdesk/opsdesk/internal/api/handler"
	"github.com/opsdesk/opsdesk/internal/api/middleware"
	"github.com/opsdesk/opsdesk/internal/core/service"
	mongodb "github.com/opsdesk/opsdesk/internal/infrastructure/db/mongo"
	"github.com/opsdesk/opsdesk/internal/pkg/config"
	"github.com/opsdesk/opsdesk/internal/ratelimit"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("opsdesk"))

	// --- Dependencies ---
	clientRepo := mongodb.NewClientRepository(db)
	requestRepo := mongodb.NewRequestRepository(db)
	authRepo := mongodb.NewAuthRepository(db)

	clientService := service.NewClientService(clientRepo, log)
	requestService := service.NewRequestService(requestRepo, clientRepo, log)
	reportService := service.NewReportService(requestRepo, clientRepo, log)
	limiter := ratelimit.NewFixedWindow(ratelimit.DefaultWindow, ratelimit.DefaultLimit)
	intakeService := service.NewIntakeService(clientRepo, requestService, limiter, log)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL)

	clientHandler := handler.NewClientHandler(clientService, reportService)
	requestHandler := handler.NewRequestHandler(requestService)
	publicHandler := handler.NewPublicHandler(intakeService)
	authHandler := handler.NewAuthHandler(authService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Operator surface ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))

	v1.GET("/clients", clientHandler.List)
	v1.POST("/clients", clientHandler.Create)
	v1.POST("/clients/:id/archive", clientHandler.Archive)
	v1.POST("/clients/:id/unarchive", clientHandler.Unarchive)
	v1.GET("/clients/:id/pin", clientHandler.GetPIN)
	v1.POST("/clients/:id/pin/rotate", clientHandler.RotatePIN)
	v1.DELETE("/clients/:id", clientHandler.Delete)
	v1.GET("/clients/:id/report", clientHandler.WeeklyReport)

	v1.GET("/requests", requestHandler.List)
	v1.POST("/requests", requestHandler.Create)
	v1.PATCH("/requests/:id", requestHandler.Edit)
	v1.DELETE("/requests/:id", requestHandler.Delete)

	// --- Public intake (no credential) ---
	e.GET("/public/:code", publicHandler.Resolve)
	e.POST("/public/:code/requests", publicHandler.Submit)

	// --- Health probes and metrics ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
