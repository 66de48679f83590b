package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/go-api-starter/internal/metrics"
)

// MetricsServer exposes /metrics on its own port so the scrape endpoint is
// never reachable through the public API listener.
type MetricsServer struct {
	listener
	router *gin.Engine
}

// NewMetricsServer creates a MetricsServer. A nil provider yields a server
// that answers 404 to every path.
func NewMetricsServer(host string, port int, logger *slog.Logger, metricsProvider *metrics.Provider) *MetricsServer {
	router := gin.New()
	router.Use(gin.Recovery())
	if metricsProvider != nil {
		router.GET("/metrics", gin.WrapH(metricsProvider.Handler()))
	}

	return &MetricsServer{
		listener: newListener("metrics server", host, port, logger),
		router:   router,
	}
}

// GetHandler returns the router without starting a listener.
func (s *MetricsServer) GetHandler() http.Handler {
	return s.router
}

// Start serves metrics until Shutdown is called.
func (s *MetricsServer) Start(ctx context.Context) error {
	return s.serve(s.router)
}
