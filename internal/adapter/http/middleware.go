package adapthttp

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"weightlog/internal/app"
	"weightlog/internal/domain"
)

type contextKey string

const userContextKey contextKey = "user"

// authMiddleware validates session tokens and forward auth headers.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.disableAuth {
			user, err := s.svc.Auth.ValidateForwardAuth(r.Context(), localUser)
			if err != nil {
				s.internalError(w, r, err)
				return
			}
			next.ServeHTTP(w, withUser(r, user))
			return
		}

		// Authelia forward auth takes precedence over the session cookie.
		if remoteUser := r.Header.Get("Remote-User"); s.forwardAuth && remoteUser != "" {
			user, err := s.svc.Auth.ValidateForwardAuth(r.Context(), remoteUser)
			if err == nil && user != nil {
				next.ServeHTTP(w, withUser(r, user))
				return
			}
		}

		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
			return
		}

		user, err := s.svc.Auth.ValidateSession(r.Context(), cookie.Value, r.UserAgent())
		if errors.Is(err, app.ErrSessionNotFound) || errors.Is(err, app.ErrSessionExpired) || errors.Is(err, app.ErrUserNotFound) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
			return
		}
		if err != nil {
			s.internalError(w, r, err)
			return
		}

		next.ServeHTTP(w, withUser(r, user))
	})
}

func withUser(r *http.Request, user *domain.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userContextKey, user))
}

// userFromContext returns the authenticated user. Only handlers behind
// authMiddleware may call it.
func userFromContext(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userContextKey).(*domain.User)
	return user
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n
	return n, err
}

// loggingMiddleware logs one line per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", clientIP(r)),
		)
	})
}

// ipLimiter hands out a token bucket per client IP. Idle buckets are dropped
// after limiterIdle.
type ipLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*limiterEntry
}

type limiterEntry struct {
	limiter *rate.Limiter
	expires time.Time
}

const limiterIdle = 5 * time.Minute

func newIPLimiter(perMinute int) *ipLimiter {
	perMinute = max(perMinute, 1)
	return &ipLimiter{
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    max(perMinute/2, 1),
		limiters: make(map[string]*limiterEntry),
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, e := range l.limiters {
		if now.After(e.expires) {
			delete(l.limiters, key)
		}
	}

	e, ok := l.limiters[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = e
	}
	e.expires = now.Add(limiterIdle)
	return e.limiter.Allow()
}

func (s *Server) rateLimited(l *ipLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r)) {
			writeJSON(w, http.StatusTooManyRequests, map[string]any{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
