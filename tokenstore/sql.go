package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Schema is the auth_tokens table; the same DDL ships as a migration
const Schema = `CREATE TABLE IF NOT EXISTS auth_tokens (
	session_id TEXT PRIMARY KEY,
	token      TEXT NOT NULL,
	expires_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

type tokenRow struct {
	Token     string `db:"token"`
	ExpiresAt int64  `db:"expires_at"`
}

// SQLBackend keeps sealed tokens in SQLite so sessions survive restarts
type SQLBackend struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLBackend makes sure the table exists and returns the backend
func NewSQLBackend(ctx context.Context, db *sqlx.DB) (*SQLBackend, error) {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return nil, fmt.Errorf("creating auth_tokens: %w", err)
	}
	return &SQLBackend{db: db, now: time.Now}, nil
}

func (b *SQLBackend) Load(ctx context.Context, sessionID string) (string, error) {
	var row tokenRow
	err := b.db.GetContext(ctx, &row,
		"SELECT token, expires_at FROM auth_tokens WHERE session_id = ?", sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if row.ExpiresAt <= b.now().Unix() {
		if _, err := b.db.ExecContext(ctx, "DELETE FROM auth_tokens WHERE session_id = ?", sessionID); err != nil {
			return "", err
		}
		return "", nil
	}
	return row.Token, nil
}

func (b *SQLBackend) Save(ctx context.Context, sessionID, sealed string, expiresAt time.Time) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO auth_tokens (session_id, token, expires_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			token = excluded.token,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		sessionID, sealed, expiresAt.Unix(), b.now().Unix())
	return err
}

func (b *SQLBackend) Delete(ctx context.Context, sessionID string) error {
	_, err := b.db.ExecContext(ctx, "DELETE FROM auth_tokens WHERE session_id = ?", sessionID)
	return err
}

// Purge drops expired rows and returns how many were removed
func (b *SQLBackend) Purge(ctx context.Context) (int64, error) {
	result, err := b.db.ExecContext(ctx, "DELETE FROM auth_tokens WHERE expires_at <= ?", b.now().Unix())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
