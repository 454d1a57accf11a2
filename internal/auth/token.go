package auth

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
)

// TokenSource supplies the bearer token for backend calls. Token returns
// domain.ErrNoToken when the user is not signed in and domain.ErrTokenExpired
// when the held token's exp claim has passed.
type TokenSource interface {
	Token() (string, error)
}

// FailureKind classifies a server-side auth rejection.
type FailureKind int

const (
	FailureExpired FailureKind = iota // reauthenticate, keep session state
	FailureInvalid                    // force sign-out
)

// Store holds the session token behind a mutex. It is the single mutation
// point for credentials; everything else reads through TokenSource.
type Store struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	logger    *zap.Logger

	onFailure func(FailureKind)
}

func NewStore(logger *zap.Logger) *Store {
	return &Store{logger: logger}
}

// OnFailure registers the hook the API client invokes when the backend
// rejects the token with a 401.
func (s *Store) OnFailure(fn func(FailureKind)) {
	s.mu.Lock()
	s.onFailure = fn
	s.mu.Unlock()
}

// Set replaces the session token. The exp claim is decoded without
// signature verification; the backend remains the authority, this only
// lets callers skip a doomed request.
func (s *Store) Set(token string) {
	exp := time.Time{}
	if claims := decodeClaims(token); claims != nil {
		if t, err := claims.GetExpirationTime(); err == nil && t != nil {
			exp = t.Time
		}
	}

	s.mu.Lock()
	s.token = token
	s.expiresAt = exp
	s.mu.Unlock()
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.expiresAt = time.Time{}
	s.mu.Unlock()
}

func (s *Store) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return "", domain.ErrNoToken
	}
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return "", domain.ErrTokenExpired
	}
	return s.token, nil
}

// ReportFailure is called by the API client after a 401. Expired tokens
// trigger the reauthentication hook; invalid tokens clear the session.
func (s *Store) ReportFailure(kind FailureKind) {
	s.mu.RLock()
	fn := s.onFailure
	s.mu.RUnlock()

	switch kind {
	case FailureExpired:
		s.logger.Warn("auth token expired, reauthentication required")
	case FailureInvalid:
		s.logger.Warn("auth token rejected, clearing session")
		s.Clear()
	}

	if fn != nil {
		fn(kind)
	}
}

func decodeClaims(token string) jwt.MapClaims {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}
