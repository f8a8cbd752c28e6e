package metadata

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/memoradmin/internal/common"
	"github.com/dmitrijs2005/memoradmin/internal/dbx"
)

const (
	subjectKey   = "auth_subject"
	expiresAtKey = "auth_expires_at"
)

// Session is the persisted login state.
type Session struct {
	Token     string
	Subject   string
	ExpiresAt time.Time
}

// TokenStore keeps the session bearer token under common.AuthTokenKey.
// It satisfies the gateway's token source, so every request reads the
// current value.
type TokenStore struct {
	db *sql.DB
}

func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db}
}

// Token returns the stored token or "" when there is none.
func (s *TokenStore) Token(ctx context.Context) (string, error) {
	v, err := NewSQLiteRepository(s.db).Get(ctx, common.AuthTokenKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Load returns the stored session, or nil when nobody is signed in.
func (s *TokenStore) Load(ctx context.Context) (*Session, error) {
	all, err := NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	token := string(all[common.AuthTokenKey])
	if token == "" {
		return nil, nil
	}
	sess := &Session{Token: token, Subject: string(all[subjectKey])}
	if raw := all[expiresAtKey]; len(raw) > 0 {
		if t, err := time.Parse(time.RFC3339, string(raw)); err == nil {
			sess.ExpiresAt = t
		}
	}
	return sess, nil
}

// Save replaces the stored session atomically.
func (s *TokenStore) Save(ctx context.Context, sess Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := NewSQLiteRepository(tx)
		if err := r.Set(ctx, common.AuthTokenKey, []byte(sess.Token)); err != nil {
			return err
		}
		if err := r.Set(ctx, subjectKey, []byte(sess.Subject)); err != nil {
			return err
		}
		if sess.ExpiresAt.IsZero() {
			return r.Delete(ctx, expiresAtKey)
		}
		return r.Set(ctx, expiresAtKey, []byte(sess.ExpiresAt.UTC().Format(time.RFC3339)))
	})
}

// Clear forgets the session.
func (s *TokenStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := NewSQLiteRepository(tx)
		for _, k := range []string{common.AuthTokenKey, subjectKey, expiresAtKey} {
			if err := r.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
}
