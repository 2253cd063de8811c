package auth

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession is returned for tokens that are malformed, expired or
// signed with another key.
var ErrInvalidSession = errors.New("invalid session")

// SessionManager issues and verifies the signed tokens that bind a browser
// (or gRPC client) to a user id.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionManager returns a manager signing HS256 tokens with secret.
func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the lifetime of issued tokens.
func (m *SessionManager) TTL() time.Duration { return m.ttl }

// Issue returns a token for userID and its expiry.
func (m *SessionManager) Issue(userID int64) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, errors.New("session secret is empty")
	}
	now := m.now()
	exp := now.Add(m.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return s, exp, nil
}

// Parse validates token and returns the user id it was issued for.
func (m *SessionManager) Parse(token string) (int64, error) {
	if len(m.secret) == 0 {
		return 0, errors.New("session secret is empty")
	}
	var claims jwt.RegisteredClaims
	tok, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return 0, ErrInvalidSession
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidSession
	}
	return id, nil
}
