package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	h "landingwaitlist/internal/delivery/http/helpers"
	"landingwaitlist/internal/metrics"
	"landingwaitlist/internal/timing"
)

// KeyedLimiter applies a token bucket per client key and periodically evicts idle entries.
type KeyedLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	mu    sync.Mutex
	byKey map[string]*limiterEntry
	hits  uint64
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewKeyedLimiter returns a limiter allowing rps requests per second with the given burst per key.
// It returns nil, which allows everything, when rps or burst is not positive.
func NewKeyedLimiter(rps float64, burst int, idleTTL time.Duration) *KeyedLimiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	return &KeyedLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
		byKey:   make(map[string]*limiterEntry),
	}
}

// Allow reports whether one request for key may proceed at now.
func (l *KeyedLimiter) Allow(key string, now time.Time) bool {
	if l == nil || key == "" {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.byKey[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.byKey[key] = e
	}
	e.lastSeen = now
	allowed := e.limiter.AllowN(now, 1)

	l.hits++
	if l.hits%512 == 0 {
		cutoff := now.Add(-l.idleTTL)
		for k, v := range l.byKey {
			if v.lastSeen.Before(cutoff) {
				delete(l.byKey, k)
			}
		}
	}
	return allowed
}

// Len returns the number of tracked keys.
func (l *KeyedLimiter) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byKey)
}

// RateLimit rejects requests over the per-client budget with 429.
// Rejections are counted in m and logged at most once a minute.
func RateLimit(l *KeyedLimiter, trustProxy bool, m *metrics.Metrics, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	warn := timing.Throttle(func() {
		logger.Warn("signup rate limit hit; further hits are not logged for a minute")
	}, time.Minute)
	return func(next http.HandlerFunc) http.HandlerFunc {
		if l == nil {
			return next
		}
		retryAfter := strconv.Itoa(int(math.Ceil(1 / float64(l.limit))))
		return func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(h.ClientIP(r, trustProxy), time.Now()) {
				m.IncRateLimited()
				warn()
				w.Header().Set("Retry-After", retryAfter)
				h.WriteError(w, h.ErrCodeTooManyRequests, "too many requests, please slow down")
				return
			}
			next(w, r)
		}
	}
}
