package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie under which the signed session token travels
const CookieName = "session"

// ErrInvalidSession covers every way a presented token can fail: bad
// signature, expiry, wrong algorithm, garbage. Callers treat all of them as
// an anonymous visitor.
var ErrInvalidSession = errors.New("invalid session token")

// Sessions issues and verifies the signed tokens that identify a logged-in
// user across requests. Tokens are stateless: nothing is kept server-side,
// so tearing a session down is just discarding the cookie.
type Sessions struct {
	secret   []byte
	lifetime time.Duration
}

func NewSessions(secret string, lifetime time.Duration) *Sessions {
	return &Sessions{secret: []byte(secret), lifetime: lifetime}
}

// Issue signs a new session token bound to the given user id
func (s *Sessions) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

// Parse resolves a presented token to the user id it was issued for
func (s *Sessions) Parse(token string) (int64, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidSession
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, ErrInvalidSession
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidSession
	}
	return userID, nil
}

// Lifetime returns how long issued tokens stay valid
func (s *Sessions) Lifetime() time.Duration {
	return s.lifetime
}
