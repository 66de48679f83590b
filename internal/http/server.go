// Package http provides the HTTP server, its router and the operational endpoints.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/go-api-starter/internal/auth/http"
	authUseCase "github.com/allisson/go-api-starter/internal/auth/usecase"
	"github.com/allisson/go-api-starter/internal/config"
	"github.com/allisson/go-api-starter/internal/metrics"
	userHTTP "github.com/allisson/go-api-starter/internal/user/http"
)

// Server is the public API listener. db backs the readiness probe.
type Server struct {
	listener
	db         *sql.DB
	router     *gin.Engine
	appName    string
	appVersion string
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		listener: newListener("http server", host, port, logger),
		db:       db,
	}
}

// SetupRouter configures the Gin router with all routes and middleware.
// ctx bounds the background work of the rate limiters.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	authHandler *authHTTP.AuthHandler,
	userHandler *userHTTP.UserHandler,
	authUseCase authUseCase.AuthUseCase,
	metricsProvider *metrics.Provider,
) {
	s.appName = cfg.AppName
	s.appVersion = cfg.AppVersion

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/", s.rootHandler)
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/api/v1")
	v1.GET("/headers", s.headersHandler)

	authenticated := []gin.HandlerFunc{
		authHTTP.AuthenticationMiddleware(authUseCase, s.logger),
		authHTTP.RequireActiveMiddleware(authUseCase, s.logger),
	}
	if cfg.RateLimitEnabled {
		authenticated = append(authenticated, authHTTP.RateLimitMiddleware(
			ctx,
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			s.logger,
		))
	}
	requireAdmin := authHTTP.RequireAdminMiddleware(authUseCase, s.logger)

	auth := v1.Group("/auth")
	{
		public := auth.Group("")
		if cfg.RateLimitAuthEnabled {
			public.Use(authHTTP.AuthRateLimitMiddleware(
				ctx,
				cfg.RateLimitAuthRequestsPerSec,
				cfg.RateLimitAuthBurst,
				s.logger,
			))
		}
		public.POST("/login", authHandler.LoginHandler)
		public.POST("/register", authHandler.RegisterHandler)

		self := auth.Group("", authenticated...)
		self.GET("/me", authHandler.MeHandler)
	}

	users := v1.Group("/users")
	users.Use(authenticated...)
	{
		users.GET("", requireAdmin, userHandler.ListHandler)
		users.GET("/:id", userHandler.GetHandler)
		users.PUT("/:id", userHandler.UpdateHandler)
		users.DELETE("/:id", requireAdmin, userHandler.DeleteHandler)
	}

	s.router = router
}

// Start serves the router until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	return s.serve(s.router)
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}
