package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/memoradmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/memoradmin/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// SessionStore persists the signed-in session.
type SessionStore interface {
	Load(ctx context.Context) (*metadata.Session, error)
	Save(ctx context.Context, sess metadata.Session) error
	Clear(ctx context.Context) error
}

// SessionInfo describes the stored token.
type SessionInfo struct {
	Subject   string
	ExpiresAt time.Time
	Expired   bool
}

// SessionService stores and describes the bearer token issued by the
// backend. Tokens are inspected, never verified: the backend remains the
// authority on their validity.
type SessionService struct {
	store SessionStore
	now   func() time.Time
}

func NewSessionService(store SessionStore) *SessionService {
	return &SessionService{store: store, now: time.Now}
}

// Login stores token. Malformed tokens fail with common.ErrInvalidToken and
// already expired ones with common.ErrTokenExpired.
func (s *SessionService) Login(ctx context.Context, token string) (*SessionInfo, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	info, err := s.inspect(token)
	if err != nil {
		return nil, err
	}
	if info.Expired {
		return nil, common.ErrTokenExpired
	}

	if err := s.store.Save(ctx, metadata.Session{
		Token:     token,
		Subject:   info.Subject,
		ExpiresAt: info.ExpiresAt,
	}); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return info, nil
}

// Current describes the stored session, or fails with common.ErrNoSession.
func (s *SessionService) Current(ctx context.Context) (*SessionInfo, error) {
	sess, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, common.ErrNoSession
	}
	info := &SessionInfo{Subject: sess.Subject, ExpiresAt: sess.ExpiresAt}
	info.Expired = !info.ExpiresAt.IsZero() && !s.now().Before(info.ExpiresAt)
	return info, nil
}

// Logout forgets the stored token.
func (s *SessionService) Logout(ctx context.Context) error {
	return s.store.Clear(ctx)
}

func (s *SessionService) inspect(token string) (*SessionInfo, error) {
	if token == "" {
		return nil, common.ErrInvalidToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	info := &SessionInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if info.Subject == "" {
		for _, k := range []string{"email", "username", "id", "_id"} {
			if v, ok := claims[k].(string); ok && v != "" {
				info.Subject = v
				break
			}
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
		info.Expired = !s.now().Before(exp.Time)
	}
	return info, nil
}
