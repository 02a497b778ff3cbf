package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"markeep/internal/account"
	"markeep/internal/auth"
	domainerrors "markeep/internal/errors"
)

type contextKey string

const userContextKey = contextKey("user")

func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.writeError(w, r, domainerrors.Unauthorized("authorization header required"))
			return
		}

		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
			s.writeError(w, r, domainerrors.Unauthorized("invalid authorization header format"))
			return
		}

		claims, err := s.tokens.Verify(tokenString)
		if err != nil {
			s.writeError(w, r, domainerrors.Unauthorized("invalid or expired token"))
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUserFromContext(ctx context.Context) *auth.AppClaims {
	if claims, ok := ctx.Value(userContextKey).(*auth.AppClaims); ok {
		return claims
	}
	return nil
}

// RequestLogger logs one line per request once the handler has finished.
func (s *Server) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		attrs := []any{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		}
		if claims := GetUserFromContext(r.Context()); claims != nil {
			attrs = append(attrs, slog.Int64("user_id", claims.UserID))
		}
		s.logger.Info("http request", attrs...)
	})
}

const maxUserAgentLength = 512

// clientInfo describes the caller for sessions and the rate limiter.
// RemoteAddr carries a forwarded address only when server.trust_proxy_headers
// enabled RealIP.
func clientInfo(r *http.Request) account.ClientInfo {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	ua := r.UserAgent()
	if len(ua) > maxUserAgentLength {
		ua = strings.ToValidUTF8(ua[:maxUserAgentLength], "")
	}
	return account.ClientInfo{UserAgent: ua, IP: ip}
}
