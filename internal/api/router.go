package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ai-autopilot/gateway/internal/api/handler"
	"github.com/ai-autopilot/gateway/internal/api/middleware"
	"github.com/ai-autopilot/gateway/internal/auth"
	"github.com/ai-autopilot/gateway/internal/core/ports"
	"github.com/ai-autopilot/gateway/internal/core/service"
	mongodb "github.com/ai-autopilot/gateway/internal/infrastructure/db/mongo"
)

// Deps are the externally constructed collaborators the router wires into
// handlers. The token service is built once in main from the resolved
// signing context; both the login flow and the request gate use this single
// instance.
type Deps struct {
	Mongo          *mongo.Database
	Redis          *redis.Client
	Tokens         *auth.TokenService
	Completion     ports.CompletionClient
	Mailer         ports.Mailer
	RecordQueue    service.RecordQueue
	History        ports.HistoryService
	AllowedOrigins []string
	Log            zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("gateway"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(d.Mongo)
	authService := service.NewAuthService(accountRepo, d.Tokens)
	authHandler := handler.NewAuthHandler(authService)

	commandService := service.NewCommandService(d.Completion, d.RecordQueue, d.Log)
	commandHandler := handler.NewCommandHandler(commandService)
	historyHandler := handler.NewHistoryHandler(d.History)

	mailService := service.NewMailService(d.Mailer, d.Log)
	mailHandler := handler.NewMailHandler(mailService)

	authGate := middleware.Auth(d.Tokens, d.Log)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me/:id", authHandler.Me, authGate)

	// --- Protected gateway routes ---
	v1 := e.Group("/v1", authGate)
	v1.POST("/commands", commandHandler.Run)
	v1.GET("/history", historyHandler.Recent)
	v1.POST("/email", mailHandler.Send)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
