package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTTL         = time.Hour
)

// ipRateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than limiterIdleTTL are dropped by a background sweep until Stop is called.
type ipRateLimiter struct {
	limiters sync.Map // map[string]*limiterEntry
	rps      rate.Limit
	burst    int
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

type limiterEntry struct {
	limiter *rate.Limiter

	mu         sync.Mutex
	lastAccess time.Time
}

func newIPRateLimiter(rps float64, burst int) *ipRateLimiter {
	l := &ipRateLimiter{
		rps:   rate.Limit(rps),
		burst: burst,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go l.cleanupLoop(limiterCleanupInterval)
	return l
}

func (l *ipRateLimiter) get(ip string) *rate.Limiter {
	now := time.Now()
	if val, ok := l.limiters.Load(ip); ok {
		entry := val.(*limiterEntry)
		entry.mu.Lock()
		entry.lastAccess = now
		entry.mu.Unlock()
		return entry.limiter
	}

	val, _ := l.limiters.LoadOrStore(ip, &limiterEntry{
		limiter:    rate.NewLimiter(l.rps, l.burst),
		lastAccess: now,
	})
	return val.(*limiterEntry).limiter
}

func (l *ipRateLimiter) cleanupLoop(interval time.Duration) {
	defer close(l.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case now := <-ticker.C:
			l.sweep(now.Add(-limiterIdleTTL))
		}
	}
}

func (l *ipRateLimiter) sweep(threshold time.Time) {
	l.limiters.Range(func(key, value any) bool {
		entry := value.(*limiterEntry)
		entry.mu.Lock()
		stale := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if stale {
			l.limiters.Delete(key)
		}
		return true
	})
}

// Stop ends the sweep goroutine and waits for it to exit.
func (l *ipRateLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
	<-l.done
}

// RateLimitMiddleware answers 429 with a Retry-After header once a client IP
// exhausts its bucket.
func RateLimitMiddleware(limiter *ipRateLimiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		bucket := limiter.get(ip)

		if !bucket.Allow() {
			reservation := bucket.Reserve()
			retryAfter := int(math.Ceil(reservation.Delay().Seconds()))
			reservation.Cancel()

			logger.Debug("rate limit exceeded", slog.String("client_ip", ip), slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many requests. Please retry after the specified delay.",
			})
			return
		}

		c.Next()
	}
}
