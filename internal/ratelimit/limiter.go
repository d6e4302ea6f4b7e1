package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"golang.org/x/time/rate"

	"github.com/wisemotors/compare-engine/internal/monitoring"
)

// Config holds rate limiter configuration
type Config struct {
	IPLimitPerMin   int // IP-based rate limit per minute
	BurstMultiplier int // Burst capacity multiplier
}

// DefaultConfig returns default rate limiting configuration
func DefaultConfig() Config {
	return Config{
		IPLimitPerMin:   60,
		BurstMultiplier: 2,
	}
}

// Result represents the result of a rate limit check
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter provides distributed rate limiting with Redis and in-memory fallback
type RateLimiter struct {
	redisLimiter *redis_rate.Limiter
	redisClient  *RedisClient
	config       Config
	metrics      *monitoring.Metrics

	fallbackLimiters map[string]*rate.Limiter
	fallbackMutex    sync.RWMutex
}

// NewRateLimiter creates a new rate limiter with Redis and in-memory fallback
func NewRateLimiter(redisClient *RedisClient, config Config, metrics *monitoring.Metrics) *RateLimiter {
	rl := &RateLimiter{
		redisClient:      redisClient,
		config:           config,
		metrics:          metrics,
		fallbackLimiters: make(map[string]*rate.Limiter),
	}

	if redisClient.IsEnabled() {
		rl.redisLimiter = redis_rate.NewLimiter(redisClient.GetClient())
		slog.Info("Redis rate limiter initialized")
	} else {
		slog.Warn("Redis unavailable, using in-memory rate limiting only")
	}

	return rl
}

// AllowIP checks if an IP address is allowed to make a request (per-minute limit)
func (rl *RateLimiter) AllowIP(ctx context.Context, ip string) (*Result, error) {
	limit := rl.config.IPLimitPerMin

	if rl.redisLimiter != nil {
		key := fmt.Sprintf("ratelimit:ip:%s", ip)
		res, err := rl.redisLimiter.Allow(ctx, key, redis_rate.Limit{
			Rate:   limit,
			Burst:  limit * rl.config.BurstMultiplier,
			Period: time.Minute,
		})
		if err == nil {
			return &Result{
				Allowed:    res.Allowed > 0,
				Limit:      limit,
				Remaining:  res.Remaining,
				RetryAfter: res.RetryAfter,
			}, nil
		}
		slog.Warn("Redis rate limit check failed, using in-memory fallback", "error", err)
	}

	return rl.allowFallback(ip, limit), nil
}

// allowFallback uses per-IP token buckets when Redis is unavailable
func (rl *RateLimiter) allowFallback(ip string, limit int) *Result {
	rl.fallbackMutex.Lock()
	limiter, exists := rl.fallbackLimiters[ip]
	if !exists {
		limiter = rate.NewLimiter(rate.Limit(float64(limit)/60.0), limit*rl.config.BurstMultiplier)
		rl.fallbackLimiters[ip] = limiter
	}
	rl.fallbackMutex.Unlock()

	if limiter.Allow() {
		return &Result{Allowed: true, Limit: limit, Remaining: int(limiter.Tokens())}
	}
	return &Result{Allowed: false, Limit: limit, RetryAfter: time.Second}
}

// Middleware returns a Gin middleware enforcing the per-IP limit
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := rl.AllowIP(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Never block traffic because the limiter itself failed.
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))

		if !result.Allowed {
			rl.metrics.IncrementRateLimitBlocks()
			c.Header("Retry-After", fmt.Sprintf("%.0f", result.RetryAfter.Seconds()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
