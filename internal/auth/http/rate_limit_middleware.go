package http

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	authDomain "github.com/allisson/go-api-starter/internal/auth/domain"
	"github.com/allisson/go-api-starter/internal/httputil"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTimeout     = time.Hour
)

// limiterStore holds one token bucket per key.
type limiterStore[K comparable] struct {
	limiters sync.Map // map[K]*limiterEntry
	rps      float64
	burst    int
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// newLimiterStore creates a store whose stale entries are evicted until ctx is done.
func newLimiterStore[K comparable](ctx context.Context, rps float64, burst int) *limiterStore[K] {
	s := &limiterStore[K]{rps: rps, burst: burst}
	go s.cleanupStale(ctx, limiterCleanupInterval, limiterIdleTimeout)
	return s
}

func (s *limiterStore[K]) getLimiter(key K) *rate.Limiter {
	now := time.Now()
	val, loaded := s.limiters.LoadOrStore(key, &limiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: now,
	})
	entry := val.(*limiterEntry)
	if loaded {
		entry.mu.Lock()
		entry.lastAccess = now
		entry.mu.Unlock()
	}
	return entry.limiter
}

// allow reports whether a request for key may proceed, and otherwise how
// many whole seconds the caller should wait.
func (s *limiterStore[K]) allow(key K) (bool, int) {
	limiter := s.getLimiter(key)
	if limiter.Allow() {
		return true, 0
	}

	reservation := limiter.Reserve()
	retryAfter := int(math.Ceil(reservation.Delay().Seconds()))
	reservation.Cancel()
	return false, max(retryAfter, 1)
}

// cleanupStale removes limiters that have not been used for idle.
func (s *limiterStore[K]) cleanupStale(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictIdle(time.Now().Add(-idle))
		}
	}
}

func (s *limiterStore[K]) evictIdle(threshold time.Time) {
	s.limiters.Range(func(key, value any) bool {
		entry := value.(*limiterEntry)
		entry.mu.Lock()
		stale := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if stale {
			s.limiters.Delete(key)
		}
		return true
	})
}

func rejectRateLimited(c *gin.Context, retryAfter int, message string) {
	c.Header("Retry-After", strconv.Itoa(retryAfter))
	c.JSON(http.StatusTooManyRequests, httputil.ErrorResponse{
		Error:   "rate_limit_exceeded",
		Message: message,
	})
	c.Abort()
}

// AuthRateLimitMiddleware enforces per-IP rate limiting on the unauthenticated
// login and register endpoints. c.ClientIP() honors X-Forwarded-For and
// X-Real-IP according to the engine's trusted proxies.
//
// Stale limiters are evicted in the background until ctx is done.
func AuthRateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore[string](ctx, rps, burst)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if ok, retryAfter := store.allow(clientIP); !ok {
			logger.Debug("auth rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))
			rejectRateLimited(c, retryAfter, "Too many authentication attempts. Please retry later.")
			return
		}

		c.Next()
	}
}

// RateLimitMiddleware enforces per-user rate limiting on authenticated requests.
// It must run after AuthenticationMiddleware.
//
// Stale limiters are evicted in the background until ctx is done.
func RateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore[uuid.UUID](ctx, rps, burst)

	return func(c *gin.Context) {
		user, ok := GetUser(c.Request.Context())
		if !ok {
			logger.Error("rate limit middleware: no authenticated user in context")
			httputil.HandleErrorGin(c, authDomain.ErrMissingToken, logger)
			c.Abort()
			return
		}

		if ok, retryAfter := store.allow(user.ID); !ok {
			logger.Debug("rate limit exceeded",
				slog.String("user_id", user.ID.String()),
				slog.Int("retry_after", retryAfter))
			rejectRateLimited(c, retryAfter, "Too many requests. Please retry later.")
			return
		}

		c.Next()
	}
}
