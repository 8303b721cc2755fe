// Package auth provides JWT authentication middleware for the social API.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ClementRollin/LinkedIn-GraphQL/internal/config"
)

// Context keys for auth data
type contextKey string

const (
	contextKeyAuth contextKey = "auth"
)

// Anonymous is the subject of unauthenticated requests.
const Anonymous = "anonymous"

// Context represents the authenticated caller.
type Context struct {
	Subject  string   `json:"subject"`
	Issuer   string   `json:"issuer,omitempty"`
	Audience []string `json:"audience,omitempty"`
	Expires  int64    `json:"exp,omitempty"`
}

// UserID returns the subject as a user id. It reports false for anonymous
// callers and for subjects that are not a 32-bit integer, the range of the
// users.id column.
func (c *Context) UserID() (int, bool) {
	if c == nil || c.Subject == "" || c.Subject == Anonymous {
		return 0, false
	}
	id, err := strconv.ParseInt(c.Subject, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(id), true
}

// FromContext extracts the auth context from a request context.
func FromContext(ctx context.Context) *Context {
	if auth, ok := ctx.Value(contextKeyAuth).(*Context); ok {
		return auth
	}
	return &Context{Subject: Anonymous}
}

// WithContext returns a copy of ctx carrying the given auth context.
func WithContext(ctx context.Context, authCtx *Context) context.Context {
	return context.WithValue(ctx, contextKeyAuth, authCtx)
}

// Middleware returns an HTTP middleware that validates HS256 bearer tokens.
// Without a configured secret every request is anonymous, unless it names
// itself with an X-User-Id header.
func Middleware(cfg *config.Config) func(http.Handler) http.Handler {
	secret := []byte(cfg.JWTSecret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")

			if len(secret) == 0 || authHeader == "" {
				authCtx := &Context{Subject: Anonymous}
				if userID := r.Header.Get("X-User-Id"); userID != "" && len(secret) == 0 {
					authCtx = &Context{Subject: userID}
				}
				next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), authCtx)))
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, `{"error": "invalid authorization header"}`, http.StatusUnauthorized)
				return
			}
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			authCtx, err := validateToken(tokenString, secret, cfg)
			if err != nil {
				if cfg.AuthDebug {
					http.Error(w, fmt.Sprintf(`{"error": %q}`, err.Error()), http.StatusUnauthorized)
				} else {
					http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), authCtx)))
		})
	}
}

func validateToken(tokenString string, secret []byte, cfg *config.Config) (*Context, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.AuthIssuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.AuthIssuer))
	}
	if cfg.AuthAudience != "" {
		opts = append(opts, jwt.WithAudience(cfg.AuthAudience))
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims type")
	}

	authCtx := &Context{
		Subject: getStringClaim(claims, "sub"),
		Issuer:  getStringClaim(claims, "iss"),
	}
	if authCtx.Subject == "" {
		return nil, fmt.Errorf("missing sub claim")
	}

	if aud, err := claims.GetAudience(); err == nil {
		authCtx.Audience = aud
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		authCtx.Expires = exp.Unix()
	}

	return authCtx, nil
}

func getStringClaim(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}
