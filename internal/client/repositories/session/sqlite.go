// Package session persists the identity-provider session in a local SQLite
// database, so a signed-in user stays signed in across client restarts.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/respirex/respirex-client/internal/client/identity"
	"github.com/respirex/respirex-client/internal/dbx"
)

const (
	keySession = "session"
	keySavedAt = "saved_at"
)

// SQLiteRepository implements identity.Store on top of the auth_state table.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) get(ctx context.Context, q dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM auth_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auth_state[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) set(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO auth_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set auth_state[%s]: %w", key, err)
	}
	return nil
}

// Load returns the persisted session, or (nil, nil) when none is stored.
func (r *SQLiteRepository) Load(ctx context.Context) (*identity.Session, error) {
	value, err := r.get(ctx, r.db, keySession)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}

	var s identity.Session
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, fmt.Errorf("failed to decode stored session: %w", err)
	}
	return &s, nil
}

// Save stores the session and its save timestamp in a single transaction.
func (r *SQLiteRepository) Save(ctx context.Context, s *identity.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := r.set(ctx, tx, keySession, data); err != nil {
			return err
		}
		return r.set(ctx, tx, keySavedAt, []byte(time.Now().UTC().Format(time.RFC3339)))
	})
}

// Clear wipes all persisted auth state (on sign-out or revocation).
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_state`)
	if err != nil {
		return fmt.Errorf("failed to clear auth_state: %w", err)
	}
	return nil
}
