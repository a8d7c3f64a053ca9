package ratelimit

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"focustime/pkg/auth"
	"focustime/pkg/metrics"
)

// EndpointConfig is the per-endpoint limit: Requests per Window, keyed by
// KeyFunc (client IP before auth, user id after).
type EndpointConfig struct {
	Requests int
	Window   time.Duration
	KeyFunc  func(*gin.Context) string
}

// RateLimiter applies a fixed window counter per key, backed by go-cache so
// stale windows expire on their own.
type RateLimiter struct {
	cache   *cache.Cache
	config  map[string]EndpointConfig
	logger  *zap.Logger
	metrics *metrics.AppMetrics
	tokens  *auth.JWT
	mutex   sync.Mutex
}

type entry struct {
	Count     int
	ResetTime time.Time
}

func NewRateLimiter(logger *zap.Logger, m *metrics.AppMetrics, tokens *auth.JWT) *RateLimiter {
	rl := &RateLimiter{
		cache:   cache.New(5*time.Minute, 10*time.Minute),
		logger:  logger,
		metrics: m,
		tokens:  tokens,
	}

	rl.config = map[string]EndpointConfig{
		"POST /auth/register": {
			Requests: 5,
			Window:   time.Minute,
			KeyFunc:  ClientIP,
		},
		"POST /auth/login": {
			Requests: 10,
			Window:   time.Minute,
			KeyFunc:  ClientIP,
		},
		"POST /focus_session/save": {
			Requests: 30,
			Window:   time.Minute,
			KeyFunc:  rl.userKey,
		},
		"default": {
			Requests: 120,
			Window:   time.Minute,
			KeyFunc:  rl.userKey,
		},
	}

	return rl
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		methodPath := c.Request.Method + " " + path

		config, exists := rl.config[methodPath]
		if !exists {
			config = rl.config["default"]
		}

		key := fmt.Sprintf("rate_limit:%s:%s", methodPath, config.KeyFunc(c))

		allowed, remaining, resetTime := rl.check(key, config)

		keyType := "ip"
		if strings.Contains(key, "user_") {
			keyType = "user"
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(path, keyType)
			}

			rl.logger.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.String("path", path),
				zap.Int("limit", config.Requests),
				zap.Duration("window", config.Window))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"message":     fmt.Sprintf("Too many requests. Limit: %d per %v", config.Requests, config.Window),
				"retry_after": int(time.Until(resetTime).Seconds()),
			})
			c.Abort()
			return
		}

		if rl.metrics != nil {
			rl.metrics.RecordRateLimitAllowed(path, keyType)
		}

		c.Next()
	}
}

// check counts the request against the key's current window under the mutex,
// so concurrent requests cannot double-spend the same slot.
func (rl *RateLimiter) check(key string, config EndpointConfig) (bool, int, time.Time) {
	now := time.Now()

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if cached, found := rl.cache.Get(key); found {
		e := cached.(entry)

		if now.Before(e.ResetTime) {
			if e.Count >= config.Requests {
				return false, 0, e.ResetTime
			}

			e.Count++
			rl.cache.Set(key, e, cache.DefaultExpiration)

			return true, config.Requests - e.Count, e.ResetTime
		}
	}

	resetTime := now.Add(config.Window)
	rl.cache.Set(key, entry{Count: 1, ResetTime: resetTime}, config.Window)

	return true, config.Requests - 1, resetTime
}

// SetConfig overrides the limit for one "METHOD /path" endpoint.
func (rl *RateLimiter) SetConfig(methodPath string, config EndpointConfig) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	rl.config[methodPath] = config
}

func ClientIP(c *gin.Context) string {
	return c.ClientIP()
}

// userKey identifies the caller by user. The limiter runs before the auth
// middleware, so the session cookie is verified here directly; requests
// without a valid session fall back to the client IP.
func (rl *RateLimiter) userKey(c *gin.Context) string {
	if userID, exists := c.Get("x-user-id"); exists {
		return fmt.Sprintf("user_%v", userID)
	}

	if rl.tokens != nil {
		if cookie, err := c.Cookie(auth.CookieName); err == nil && cookie != "" {
			if userID, err := rl.tokens.VerifyToken(cookie); err == nil {
				return "user_" + userID
			}
		}
	}

	return ClientIP(c)
}
