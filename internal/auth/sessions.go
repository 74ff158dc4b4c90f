// Bearer token sessions: HS256 JWTs tracked in an in-process session set
// so logout can revoke a token before it expires.
package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultTTL = 24 * time.Hour

var (
	// ErrInvalidToken reports a token that fails parsing, signature, or
	// expiry checks.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrSessionRevoked reports a well-formed token whose session has been
	// logged out or belongs to an earlier process.
	ErrSessionRevoked = errors.New("session revoked")
)

// Claims is the token payload.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Sessions issues and checks bearer tokens. The active set lives in
// memory only: restarting the process logs everyone out.
type Sessions struct {
	secret []byte
	ttl    time.Duration

	mu     sync.Mutex
	active map[string]int64 // token id -> user id
}

// NewSessions builds a session registry signing with the given secret.
// A non-positive ttl falls back to 24 hours.
func NewSessions(secret string, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Sessions{
		secret: []byte(secret),
		ttl:    ttl,
		active: make(map[string]int64),
	}
}

// Issue signs a token for the user and registers its session.
func (s *Sessions) Issue(userID int64, username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.active[claims.ID] = userID
	s.mu.Unlock()
	return token, nil
}

// Verify parses and validates a token and confirms its session is still
// active. Returns the claims on success.
func (s *Sessions) Verify(token string) (*Claims, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	_, alive := s.active[claims.ID]
	s.mu.Unlock()
	if !alive {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

// Revoke ends the session behind a valid token. Later Verify calls for
// the same token fail with ErrSessionRevoked.
func (s *Sessions) Revoke(token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.active, claims.ID)
	s.mu.Unlock()
	return nil
}

func (s *Sessions) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
