package http

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	apperrors "github.com/allisson/vending/internal/errors"
	"github.com/allisson/vending/internal/httputil"
)

const (
	limiterIdleTimeout   = time.Hour
	limiterSweepInterval = 5 * time.Minute
)

// limiterStore holds one token bucket per key. Idle buckets are dropped during lookups,
// so the store never needs a background goroutine.
type limiterStore[K comparable] struct {
	mu        sync.Mutex
	limiters  map[K]*limiterEntry
	rps       float64
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func newLimiterStore[K comparable](rps float64, burst int) *limiterStore[K] {
	return &limiterStore[K]{
		limiters:  make(map[K]*limiterEntry),
		rps:       rps,
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (s *limiterStore[K]) get(key K) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= limiterSweepInterval {
		threshold := now.Add(-limiterIdleTimeout)
		for k, entry := range s.limiters {
			if entry.lastAccess.Before(threshold) {
				delete(s.limiters, k)
			}
		}
		s.lastSweep = now
	}

	entry, ok := s.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(s.rps), s.burst)}
		s.limiters[key] = entry
	}
	entry.lastAccess = now
	return entry.limiter
}

func (s *limiterStore[K]) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// RateLimitMiddleware enforces per-account rate limiting on authenticated requests.
// It must run after AuthenticationMiddleware. Exceeding the limit responds
// 429 Too Many Requests with a Retry-After header.
func RateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore[uuid.UUID](rps, burst)

	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok {
			logger.Error("rate limit middleware: no authenticated principal in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			return
		}

		if !allow(c, store.get(principal.UserID)) {
			logger.Debug("rate limit exceeded", slog.String("user_id", principal.UserID.String()))
			return
		}
		c.Next()
	}
}

// AuthRateLimitMiddleware enforces per-IP rate limiting on the unauthenticated login and
// refresh endpoints to slow down credential stuffing. c.ClientIP() honours
// X-Forwarded-For and X-Real-IP.
func AuthRateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore[string](rps, burst)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if !allow(c, store.get(clientIP)) {
			logger.Debug("auth rate limit exceeded", slog.String("client_ip", clientIP))
			return
		}
		c.Next()
	}
}

// allow consumes one token or aborts the request with 429.
func allow(c *gin.Context, limiter *rate.Limiter) bool {
	if limiter.Allow() {
		return true
	}

	reservation := limiter.Reserve()
	retryAfter := int(math.Ceil(reservation.Delay().Seconds()))
	reservation.Cancel()

	c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.ErrorResponse{
		Error:   "rate_limit_exceeded",
		Message: "Too many requests. Please retry after the specified delay.",
	})
	return false
}
