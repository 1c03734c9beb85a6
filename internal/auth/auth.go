// Package auth verifies bearer tokens issued by the hosting provider and
// exposes the signed-in member to the rest of the API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gravadigital/community-api/internal/config"
)

var (
	ErrMissingToken = errors.New("auth: bearer token is required")
	ErrInvalidToken = errors.New("auth: bearer token is invalid")
	ErrExpiredToken = errors.New("auth: bearer token is expired")
	ErrNotConfigured = errors.New("auth: verifier is not configured")
)

// Claims is the subset of a session token this API relies on
type Claims struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// Verifier checks HS256 session tokens
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
}

// NewVerifier builds a verifier from the auth section of cfg
func NewVerifier(cfg *config.Config) (*Verifier, error) {
	secret := strings.TrimSpace(cfg.Auth.JWTSecret)
	if secret == "" {
		return nil, fmt.Errorf("%w: AUTH_JWT_SECRET is required", ErrNotConfigured)
	}
	return &Verifier{
		secret:   []byte(secret),
		issuer:   strings.TrimSpace(cfg.Auth.Issuer),
		audience: strings.TrimSpace(cfg.Auth.Audience),
		now:      time.Now,
	}, nil
}

// WithClock replaces the verifier's time source
func (v *Verifier) WithClock(now func() time.Time) *Verifier {
	v.now = now
	return v
}

// Verify parses token and checks signature, expiry, issuer and audience.
// The subject claim carries the member's profile id.
func (v *Verifier) Verify(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrMissingToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	var parsed sessionClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}

	if strings.TrimSpace(parsed.Subject) == "" {
		return Claims{}, fmt.Errorf("%w: subject is required", ErrInvalidToken)
	}

	return Claims{
		UserID:    parsed.Subject,
		Email:     parsed.Email,
		ExpiresAt: parsed.ExpiresAt.Time.UTC(),
	}, nil
}

func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrExpiredToken
	}
	return fmt.Errorf("%w: %w", ErrInvalidToken, err)
}

type userKey struct{}

// WithUser stores the authenticated member id in ctx
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserFromContext returns the authenticated member id, if any
func UserFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userKey{}).(string)
	return userID, ok && userID != ""
}

// ContextIdentity resolves the current member from the request context. It
// satisfies attendance.Identity.
type ContextIdentity struct{}

func (ContextIdentity) CurrentUser(ctx context.Context) (string, bool) {
	return UserFromContext(ctx)
}
