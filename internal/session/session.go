// Package session holds the operator session the console works under. It is
// created once when the console starts and closed on logout.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/alimikegami/point-of-sales/admin-console/internal/domain"
	"github.com/alimikegami/point-of-sales/admin-console/pkg/errs"
)

type Session struct {
	mu     sync.RWMutex
	token  string
	user   domain.User
	expiry time.Time
	closed bool
	now    func() time.Time
}

// New validates the token and user and opens a session. When the token is a
// JWT its exp claim is honoured; the signature is checked by the backend, not
// here.
func New(token string, user domain.User) (*Session, error) {
	return newSession(token, user, time.Now)
}

func newSession(token string, user domain.User, now func() time.Time) (*Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errs.ErrMissingToken
	}
	if user.UserType != domain.UserTypeAdmin {
		return nil, errs.ErrNotAdmin
	}

	s := &Session{token: token, user: user, now: now}

	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			s.expiry = time.Unix(int64(exp), 0)
		}
	}
	if s.expired() {
		return nil, errs.ErrSessionExpired
	}

	return s, nil
}

func (s *Session) User() domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// AuthHeader returns the Authorization header value for backend requests.
func (s *Session) AuthHeader() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", errs.ErrSessionClosed
	}
	if s.expired() {
		return "", errs.ErrSessionExpired
	}
	return "Bearer " + s.token, nil
}

// Close ends the session. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.token = ""
}

func (s *Session) expired() bool {
	return !s.expiry.IsZero() && !s.now().Before(s.expiry)
}
