// Package tokenstore keeps the remote API bearer token of each browser
// session on the server side, sealed at rest and bounded by an expiry.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultTTL is how long a stored token stays usable unless its own exp claim is earlier
const DefaultTTL = 7 * 24 * time.Hour

// Backend persists sealed tokens keyed by session id.
// Load returns "" with a nil error when nothing usable is stored.
type Backend interface {
	Load(ctx context.Context, sessionID string) (string, error)
	Save(ctx context.Context, sessionID, sealed string, expiresAt time.Time) error
	Delete(ctx context.Context, sessionID string) error
}

// Store seals tokens on the way in and opens them on the way out
type Store struct {
	backend Backend
	sealer  *Sealer
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// Option customizes a Store
type Option func(*Store)

// WithTTL overrides DefaultTTL
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New builds a Store on top of backend
func New(backend Backend, sealer *Sealer, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		sealer:  sealer,
		ttl:     DefaultTTL,
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session returns the token store of one browser session
func (s *Store) Session(sessionID string) *Scoped {
	return &Scoped{store: s, sessionID: sessionID}
}

// Scoped is the token store of a single session. It satisfies apiclient.TokenStore.
type Scoped struct {
	store     *Store
	sessionID string
}

// SessionID returns the session the store is bound to
func (t *Scoped) SessionID() string { return t.sessionID }

// Token returns the stored token, or "" when none is stored or it has expired
func (t *Scoped) Token(ctx context.Context) (string, error) {
	sealed, err := t.store.backend.Load(ctx, t.sessionID)
	if err != nil {
		return "", fmt.Errorf("loading token of session %s: %w", t.sessionID, err)
	}
	if sealed == "" {
		return "", nil
	}

	token, err := t.store.sealer.Open(sealed)
	if err != nil {
		// sealed with another key, e.g. before a restart with a random secret
		t.store.logger.Warn("Discarding unreadable token", zap.String("session_id", t.sessionID), zap.Error(err))
		if delErr := t.store.backend.Delete(ctx, t.sessionID); delErr != nil {
			t.store.logger.Error("Deleting unreadable token failed", zap.Error(delErr))
		}
		return "", nil
	}
	return token, nil
}

// ErrExpiredToken is returned by SetToken for a token that is already past its expiry
var ErrExpiredToken = errors.New("token is already expired")

// SetToken seals and stores token until its expiry. An expired token clears
// the store and fails with ErrExpiredToken.
func (t *Scoped) SetToken(ctx context.Context, token string) error {
	now := t.store.now()
	expiresAt := Expiry(token, now, t.store.ttl)
	if !expiresAt.After(now) {
		t.store.logger.Warn("Refusing to store an expired token", zap.String("session_id", t.sessionID))
		if err := t.ClearToken(ctx); err != nil {
			return err
		}
		return ErrExpiredToken
	}

	sealed, err := t.store.sealer.Seal(token)
	if err != nil {
		return fmt.Errorf("sealing token: %w", err)
	}
	if err := t.store.backend.Save(ctx, t.sessionID, sealed, expiresAt); err != nil {
		return fmt.Errorf("saving token of session %s: %w", t.sessionID, err)
	}
	t.store.logger.Debug("Token stored",
		zap.String("session_id", t.sessionID),
		zap.Time("expires_at", expiresAt))
	return nil
}

// ClearToken removes the stored token
func (t *Scoped) ClearToken(ctx context.Context) error {
	if err := t.store.backend.Delete(ctx, t.sessionID); err != nil {
		return fmt.Errorf("deleting token of session %s: %w", t.sessionID, err)
	}
	return nil
}
