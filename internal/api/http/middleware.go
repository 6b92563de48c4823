package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"equishare-storefront/internal/config"
	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/logger"
	"equishare-storefront/internal/security"
	"equishare-storefront/internal/session"
)

const SessionHeader = "X-Session-ID"

type ctxKey int

const (
	claimsKey ctxKey = iota
	sessionKey
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush lets streaming handlers see through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

// authMiddleware enforces the security level configured for the matched route
func authMiddleware(tokens security.TokenManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			template := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if t, err := route.GetPathTemplate(); err == nil {
					template = t
				}
			}

			level := config.GetSecurityLevel(r.Method, template)
			if level == config.SecurityPublic {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authorization token is not provided"})
				return
			}

			claims, err := tokens.ValidateToken(token)
			if err != nil {
				writeError(w, err)
				return
			}
			if claims.Type != security.TokenTypeAccess {
				writeError(w, security.ErrWrongTokenType)
				return
			}
			if level == config.SecurityOwner && claims.Role != domain.RoleOwner {
				writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "owner role required"})
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return h[7:], true
	}
	return "", false
}

func claimsFrom(ctx context.Context) *security.ActorClaims {
	claims, _ := ctx.Value(claimsKey).(*security.ActorClaims)
	return claims
}

// actorFrom rebuilds the caller's identity from the validated token
func actorFrom(ctx context.Context) *domain.Actor {
	claims := claimsFrom(ctx)
	if claims == nil {
		return nil
	}
	return &domain.Actor{ID: claims.ActorID, Email: claims.Email, Role: claims.Role}
}

// requireSession resolves the X-Session-ID header to a live session
func requireSession(m *session.Manager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(SessionHeader)
		if id == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: SessionHeader + " header is required"})
			return
		}
		s, err := m.Get(id)
		if err != nil {
			writeError(w, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), sessionKey, s)))
	}
}

func sessionFrom(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionKey).(*session.Session)
	return s
}
