// Package middleware authenticates borrowers and operators calling the API.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/domain"
	"github.com/Amaral-Gabriel/daily-loan-pay/pkg/response"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrEmptySecret  = errors.New("jwt secret is empty")
)

type identityKey struct{}

// Claims carries the caller identity. The user id travels in the standard sub claim.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens
type Authenticator struct {
	secret []byte
	logger *slog.Logger
}

func NewAuthenticator(secret string, logger *slog.Logger) (*Authenticator, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Authenticator{secret: []byte(secret), logger: logger}, nil
}

// Middleware rejects requests without a valid token and stores the caller identity in the context
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.Authenticate(r)
		if err != nil {
			a.logger.DebugContext(r.Context(), "rejected request", "path", r.URL.Path, "error", err)
			response.Unauthorized(w, "invalid or missing token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// Authenticate extracts and verifies the bearer token of r
func (a *Authenticator) Authenticate(r *http.Request) (domain.Identity, error) {
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return domain.Identity{}, ErrMissingToken
	}

	return a.Parse(strings.TrimSpace(raw))
}

// Parse verifies a signed token and returns the identity it carries
func (a *Authenticator) Parse(raw string) (domain.Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Identity{}, fmt.Errorf("parse token: %w", err)
	}

	if claims.Subject == "" {
		return domain.Identity{}, fmt.Errorf("token has no subject")
	}

	return domain.Identity{UserID: claims.Subject, Role: claims.Role}, nil
}

// Issue signs a token for identity that expires after ttl
func (a *Authenticator) Issue(identity domain.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom returns the identity stored by Middleware
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(domain.Identity)
	return identity, ok
}
