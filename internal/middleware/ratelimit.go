package middleware

import (
	"net/http"
	"sync"
	"time"
)

// rateLimiter enforces a fixed-window request cap per caller. The
// investment and revenue-reporting endpoints sit behind it; callers are
// keyed by authenticated user id so one aggressive investor cannot
// exhaust a shared proxy IP's budget.
type rateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	callers map[string]*callerWindow
}

type callerWindow struct {
	requests int
	resetAt  time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		callers: make(map[string]*callerWindow),
	}
}

func (l *rateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cw, ok := l.callers[key]
	if !ok || !now.Before(cw.resetAt) {
		cw = &callerWindow{resetAt: now.Add(l.window)}
		l.callers[key] = cw
	}
	if cw.requests >= l.limit {
		return false
	}
	cw.requests++
	return true
}

// RateLimit rejects callers exceeding limit requests per window with 429.
func RateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	limiter := newRateLimiter(limit, window)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.allow(callerKey(r)) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// callerKey prefers the authenticated user id and falls back to the
// client IP for unauthenticated routes.
func callerKey(r *http.Request) string {
	if uid := UserIDFromContext(r.Context()); uid != "" {
		return "user:" + uid
	}
	return "ip:" + ClientIP(r)
}
