package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	authdomain "chapter-points-go/internal/domain/auth"
	memberdomain "chapter-points-go/internal/domain/member"
	"chapter-points-go/pkg/logger"
)

// TokenVerifier resolves a bearer token to claims. Implemented by the auth
// service.
type TokenVerifier interface {
	VerifyToken(token string) (authdomain.Claims, error)
}

type Auth struct {
	tokens TokenVerifier
	log    logger.Logger
}

func NewAuth(tokens TokenVerifier, log logger.Logger) *Auth {
	return &Auth{tokens: tokens, log: log}
}

type contextKey int

const claimsKey contextKey = iota

// Middleware authenticates the request from its Authorization header and puts
// the claims on the context. It never touches the database; the role is
// whatever the token says it is.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		claims, err := a.tokens.VerifyToken(token)
		if err != nil {
			a.log.Debug("auth: token rejected", "err", err)
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// RequireRole gates a route group on the role claim. Must run after
// Auth.Middleware.
func RequireRole(role memberdomain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				unauthorized(w)
				return
			}
			if claims.Role != role {
				writeError(w, http.StatusForbidden, "admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithClaims(ctx context.Context, claims authdomain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func ClaimsFromContext(ctx context.Context) (authdomain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(authdomain.Claims)
	if !ok || claims.MemberID == 0 {
		return authdomain.Claims{}, false
	}
	return claims, true
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid or missing token")
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: message})
}
