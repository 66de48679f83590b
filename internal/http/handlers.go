package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// hiddenHeaders are never echoed back by the headers endpoint.
var hiddenHeaders = map[string]struct{}{
	"Authorization": {},
	"Cookie":        {},
}

func (s *Server) rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to " + s.appName + " v" + s.appVersion,
	})
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": s.appVersion,
	})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}

// headersHandler echoes the request headers without credentials.
func (s *Server) headersHandler(c *gin.Context) {
	headers := make(map[string]string, len(c.Request.Header))
	for name, values := range c.Request.Header {
		if _, hidden := hiddenHeaders[http.CanonicalHeaderKey(name)]; hidden {
			continue
		}
		headers[name] = strings.Join(values, ", ")
	}
	if c.Request.Host != "" {
		headers["Host"] = c.Request.Host
	}

	c.JSON(http.StatusOK, gin.H{"headers": headers})
}
