package api

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	domainerrors "markeep/internal/errors"
)

const limiterIdleTTL = 10 * time.Minute

type ipLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// LoginLimiter throttles credential and code-mailing endpoints per client IP.
type LoginLimiter struct {
	rate  rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*ipLimiter
	now      func() time.Time
}

func NewLoginLimiter(rps float64, burst int) *LoginLimiter {
	return &LoginLimiter{
		rate:     rate.Limit(rps),
		burst:    burst,
		limiters: make(map[string]*ipLimiter),
		now:      time.Now,
	}
}

func (l *LoginLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, entry := range l.limiters {
		if now.Sub(entry.lastAccess) > limiterIdleTTL {
			delete(l.limiters, key)
		}
	}

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastAccess = now

	return entry.limiter.AllowN(now, 1)
}

func (l *LoginLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (s *Server) rateLimited(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientInfo(r).IP
		if !s.limiter.allow(ip) {
			retryAfter := 1
			if s.limiter.rate > 0 {
				retryAfter = max(1, int(math.Ceil(1/float64(s.limiter.rate))))
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			s.logger.Warn("login rate limit exceeded", slog.String("client_ip", ip), slog.String("path", r.URL.Path))
			s.writeError(w, r, domainerrors.TooManyRequests("too many attempts, try again later"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
