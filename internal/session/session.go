// Package session issues and verifies the signed cookie that stands in for a
// server-side login session: an HS256 JWT carrying the user id as subject and
// a random jti, revocable via Redis on logout.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"planera/internal/cache"
)

// CookieName is the session cookie set on login.
const CookieName = "planera_session"

// ErrInvalidSession covers every verification failure: bad signature, expired
// token, revoked jti, malformed subject.
var ErrInvalidSession = errors.New("invalid session")

type Manager struct {
	secret []byte
	ttl    time.Duration
	cache  *cache.Cache
}

func NewManager(secret string, ttlSeconds int, c *cache.Cache) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    time.Duration(ttlSeconds) * time.Second,
		cache:  c,
	}
}

// TTL is the session lifetime, also used for the cookie max-age.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue mints a session token for the user.
func (m *Manager) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Verify validates a token and returns the user id it was issued to.
func (m *Manager) Verify(ctx context.Context, token string) (int64, error) {
	claims, err := m.parse(token)
	if err != nil {
		return 0, err
	}
	if m.cache.SessionRevoked(ctx, claims.ID) {
		return 0, ErrInvalidSession
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidSession
	}
	return userID, nil
}

// Revoke invalidates the token's jti for the remainder of its lifetime.
// Invalid or already-expired tokens are ignored.
func (m *Manager) Revoke(ctx context.Context, token string) {
	claims, err := m.parse(token)
	if err != nil {
		return
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	m.cache.RevokeSession(ctx, claims.ID, remaining)
}

func (m *Manager) parse(token string) (*jwt.RegisteredClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSession
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ExpiresAt == nil {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
