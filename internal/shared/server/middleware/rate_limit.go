package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	defaultRateLimitGroup = "DEFAULT"
	limiterIdleTTL        = 30 * time.Minute
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
	// ClientMultiplier, when positive, adds a per-client-IP bucket of the
	// group's rule scaled by this factor on top of the per-session bucket.
	ClientMultiplier int
}

// RateLimiter keeps one token bucket per principal and group. Idle buckets
// expire after limiterIdleTTL.
type RateLimiter struct {
	mu      sync.Mutex
	buckets *cache.Cache
	now     func() time.Time
}

func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		buckets: cache.New(limiterIdleTTL, limiterIdleTTL),
		now:     now,
	}
}

func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.DefaultGroup == "" {
		cfg.DefaultGroup = defaultRateLimitGroup
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
		clientIP := strings.TrimSpace(c.ClientIP())
		session := strings.TrimSpace(SessionIDFromContext(c))
		allowed, retryAfter := true, time.Duration(0)
		if session == "" || SessionMinted(c) {
			// A minted id is new on every request, so it cannot hold a bucket.
			allowed, retryAfter = cfg.Limiter.Allow("ip:"+clientIP+"|"+group, rule)
		} else {
			if cfg.ClientMultiplier > 0 {
				clientRule := RateLimitRule{
					Rate:  rule.Rate * float64(cfg.ClientMultiplier),
					Burst: rule.Burst * cfg.ClientMultiplier,
				}
				allowed, retryAfter = cfg.Limiter.Allow("ip:"+clientIP+"|"+group, clientRule)
			}
			if allowed {
				allowed, retryAfter = cfg.Limiter.Allow("session:"+session+"|"+group, rule)
			}
		}
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
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":        "rate_limited",
			"retryAfterMs": retryAfterMs,
		})
		c.Abort()
	}
}

// Allow consumes one token for key. When the bucket is empty it reports how
// long until a token is available and leaves the bucket untouched.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil {
		return true, 0
	}
	if rule.Rate <= 0 || rule.Burst <= 0 {
		return true, 0
	}
	now := l.now()
	res := l.limiterFor(key, rule).ReserveN(now, 1)
	if !res.OK() {
		return false, time.Second
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (l *RateLimiter) limiterFor(key string, rule RateLimitRule) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if v, ok := l.buckets.Get(key); ok {
		lim := v.(*rate.Limiter)
		l.buckets.SetDefault(key, lim)
		return lim
	}
	lim := rate.NewLimiter(rate.Limit(rule.Rate), rule.Burst)
	l.buckets.SetDefault(key, lim)
	return lim
}
