package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
)

const (
	RateGroupDefault = "DEFAULT"
	RateGroupWrite   = "WRITE"
	RateGroupExport  = "EXPORT"
	RateGroupLLM     = "LLM"
)

type RateLimitRule struct {
	Rate  float64
	Burst int
}

type RateLimitConfig struct {
	Rules        map[string]RateLimitRule
	DefaultGroup string
	GroupFor     func(*gin.Context) string
	Limiter      *RateLimiter
}

// RateLimiter is an in-memory token bucket keyed by principal and group.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rateBucket
	now     func() time.Time
}

type rateBucket struct {
	tokens float64
	last   time.Time
}

func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		buckets: make(map[string]*rateBucket),
		now:     now,
	}
}

// DefaultRules derives per-group rules from a requests-per-minute budget.
// Exports and LLM calls get a quarter of the budget; writes get half.
func DefaultRules(rpm int) map[string]RateLimitRule {
	if rpm <= 0 {
		return nil
	}
	perSec := float64(rpm) / 60.0
	rule := func(div int) RateLimitRule {
		burst := rpm / div
		if burst < 1 {
			burst = 1
		}
		return RateLimitRule{Rate: perSec / float64(div), Burst: burst}
	}
	return map[string]RateLimitRule{
		RateGroupDefault: rule(1),
		RateGroupWrite:   rule(2),
		RateGroupExport:  rule(4),
		RateGroupLLM:     rule(4),
	}
}

// RouteGroup classifies resume builder routes into rate limit groups.
func RouteGroup(c *gin.Context) string {
	path := c.FullPath()
	switch {
	case strings.HasSuffix(path, "/export"):
		return RateGroupExport
	case path == "/api/v1/suggestions" || path == "/api/v1/documents/import":
		return RateGroupLLM
	case c.Request.Method != http.MethodGet:
		return RateGroupWrite
	default:
		return RateGroupDefault
	}
}

func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.DefaultGroup == "" {
		cfg.DefaultGroup = RateGroupDefault
	}
	return func(c *gin.Context) {
		group := cfg.DefaultGroup
		if cfg.GroupFor != nil {
			if g := strings.TrimSpace(cfg.GroupFor(c)); g != "" {
				group = g
			}
		}
		rule, ok := cfg.Rules[group]
		if !ok {
			c.Next()
			return
		}
		principal := strings.TrimSpace(UserIDFromContext(c))
		if principal == "" {
			principal = strings.TrimSpace(c.ClientIP())
		}
		allowed, retryAfter := cfg.Limiter.Allow(principal+"|"+group, rule)
		if allowed {
			c.Next()
			return
		}
		retryAfterMs := int(retryAfter / time.Millisecond)
		if retryAfterMs <= 0 {
			retryAfterMs = 1000
		}
		retryAfterSeconds := int(math.Ceil(float64(retryAfterMs) / 1000.0))
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "Too many requests", gin.H{
			"group":        group,
			"retryAfterMs": retryAfterMs,
		})
	}
}

// Allow consumes a token for key, returning the wait until the next one otherwise.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || rule.Rate <= 0 || rule.Burst <= 0 {
		return true, 0
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = &rateBucket{tokens: float64(rule.Burst), last: now}
		l.buckets[key] = bucket
	}
	if elapsed := now.Sub(bucket.last).Seconds(); elapsed > 0 {
		bucket.tokens = math.Min(float64(rule.Burst), bucket.tokens+elapsed*rule.Rate)
		bucket.last = now
	}
	if bucket.tokens >= 1 {
		bucket.tokens--
		return true, 0
	}
	waitSec := (1 - bucket.tokens) / rule.Rate
	return false, time.Duration(math.Ceil(waitSec*1000.0)) * time.Millisecond
}
