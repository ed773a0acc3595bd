package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/erni27/imcache"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"genz-ignite/internal/domain/user"
	"genz-ignite/internal/metrics"
	"genz-ignite/internal/platform/apperr"
	jwtpkg "genz-ignite/internal/platform/jwt"
)

type ctxKey string

const (
	ctxKeyUserID ctxKey = "user_id"
	ctxKeyRole   ctxKey = "role"
)

var slogLogger = slog.Default()

func SetLogger(l *slog.Logger) {
	if l != nil {
		slogLogger = l
	}
}

// AccountChecker resolves the live account behind a token.
type AccountChecker interface {
	Authorize(ctx context.Context, id int64) (*user.User, error)
}

// AuthMiddleware accepts a bearer token only while its account is active.
// The stored role wins over the token's, so role changes apply at once.
func AuthMiddleware(jm *jwtpkg.Manager, accounts AccountChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				errorResponse(w, apperr.Unauthorized(apperr.CodeMissingToken, "missing authorization header", nil))
				return
			}

			parts := strings.SplitN(h, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				errorResponse(w, apperr.Unauthorized(apperr.CodeInvalidToken, "invalid authorization header", nil))
				return
			}

			claims, err := jm.Parse(parts[1])
			if err != nil {
				errorResponse(w, apperr.Unauthorized(apperr.CodeInvalidToken, "invalid token", err))
				return
			}

			role := claims.Role
			if accounts != nil {
				u, err := accounts.Authorize(r.Context(), claims.UserID)
				if err != nil {
					errorResponse(w, err)
					return
				}
				role = u.Role
			}

			ctx := context.WithValue(r.Context(), ctxKeyUserID, claims.UserID)
			ctx = context.WithValue(ctx, ctxKeyRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets the request through when the token carries any of roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxRole, ok := r.Context().Value(ctxKeyRole).(string)
			if !ok || !slices.Contains(roles, ctxRole) {
				errorResponse(w, apperr.Forbidden(apperr.CodeForbidden, "insufficient permissions", nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func userIDFromCtx(r *http.Request) int64 {
	if v := r.Context().Value(ctxKeyUserID); v != nil {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit applies a per-client-IP token bucket. Each call owns its own
// set of buckets, so routes do not share budgets.
func RateLimit(r rate.Limit, burst int) func(http.Handler) http.Handler {
	buckets := newIPBuckets(r, burst, 10*time.Minute)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !buckets.allow(clientIP(r)) {
				errorResponse(w, apperr.TooManyRequests(apperr.CodeRateLimited, "too many requests", nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger records every request in metrics and the log. The live
// stream is logged when it closes, so its duration is the connection time.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(rw, r)

		status := rw.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}

		metrics.IncRequest(r.Method, route, status)

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		slogLogger.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", route,
			"status", status,
			"bytes", rw.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// ipBuckets holds one token bucket per client IP. Idle buckets expire after
// idleTTL without traffic.
type ipBuckets struct {
	buckets *imcache.Cache[string, *rate.Limiter]
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
}

func newIPBuckets(limit rate.Limit, burst int, idleTTL time.Duration) *ipBuckets {
	return &ipBuckets{
		buckets: imcache.New[string, *rate.Limiter](
			imcache.WithCleanerOption[string, *rate.Limiter](idleTTL),
		),
		limit:   limit,
		burst:   burst,
		idleTTL: idleTTL,
	}
}

func (b *ipBuckets) allow(ip string) bool {
	limiter, _ := b.buckets.GetOrSet(ip, rate.NewLimiter(b.limit, b.burst), imcache.WithSlidingExpiration(b.idleTTL))
	return limiter.Allow()
}

// clientIP keys the limiter on the connection address. Proxy headers only
// count when the router was built with TrustProxy, through chimw.RealIP.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
