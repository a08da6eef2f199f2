package http

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tair/catalog-mvc/pkg/auth"
	"github.com/tair/catalog-mvc/pkg/logger"
)

// TokenCookie carries the session token of browser clients
const TokenCookie = "catalog_token"

type contextKey string

const claimsKey contextKey = "claims"

// ClaimsFromContext returns the authenticated user, or nil
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// ContextWithClaims stores the authenticated user in ctx
func ContextWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// LoggingMiddleware assigns a request id and logs every request
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)
		ctx := logger.ContextWithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		logger.Debug(ctx).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("ip", clientIP(r)).
			Str("user_agent", r.UserAgent()).
			Msg("Request started")

		rw := wrapResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		logEvent := logger.Info(ctx)
		if rw.statusCode >= 500 {
			logEvent = logger.Error(ctx)
		} else if rw.statusCode >= 400 {
			logEvent = logger.Warn(ctx)
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.statusCode).
			Dur("duration", duration).
			Int64("duration_ms", duration.Milliseconds()).
			Msg("Request completed")
	})
}

// TracingMiddleware wraps HTTP handlers with OpenTelemetry tracing
func TracingMiddleware(operationName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, operationName,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	}
}

// Authenticator resolves the session token of a request
type Authenticator struct {
	tokens *auth.TokenManager
}

// NewAuthenticator creates a new authenticator
func NewAuthenticator(tokens *auth.TokenManager) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// OptionalAuth validates the token if present, but doesn't require it.
// The Authorization header wins over the session cookie.
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			if cookie, err := r.Cookie(TokenCookie); err == nil {
				token = cookie.Value
			}
		}
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := a.tokens.ValidateToken(token)
		if err != nil {
			logger.Debug(r.Context()).Err(err).Msg("Ignoring invalid token")
			next.ServeHTTP(w, r)
			return
		}

		logger.Debug(r.Context()).
			Uint("user_id", claims.UserID).
			Str("username", claims.Username).
			Msg("Optional auth: User identified")
		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

// AdminMiddleware lets only administrators through. Anonymous users are
// sent to the login page, other users get 403.
func AdminMiddleware(forbidden http.HandlerFunc) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				http.Redirect(w, r, loginPath+"?returnUrl="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
				return
			}
			if !claims.IsAdmin() {
				logger.Warn(r.Context()).
					Str("username", claims.Username).
					Str("role", claims.Role).
					Msg("Admin access denied")
				forbidden(w, r)
				return
			}

			next.ServeHTTP(w, r)
		}
	}
}

func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
