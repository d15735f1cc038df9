package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/amixedcolor/aws-identity-gift/internal/archive"
)

// DefaultMaxValueBytes caps a single KV value, in the spirit of a browser
// storage quota. The archive envelope never gets close without images.
const DefaultMaxValueBytes = 5 << 20

// KVMedium is an archive.Medium over the kv table.
type KVMedium struct {
	db       *sql.DB
	maxValue int
}

// KVOption configures a KVMedium.
type KVOption func(*KVMedium)

// WithMaxValueBytes sets the per-value quota. Zero disables it.
func WithMaxValueBytes(n int) KVOption {
	return func(m *KVMedium) { m.maxValue = n }
}

func newKVMedium(db *sql.DB, opts ...KVOption) *KVMedium {
	m := &KVMedium{db: db, maxValue: DefaultMaxValueBytes}
	for _, o := range opts {
		o(m)
	}
	return m
}

var _ archive.Medium = (*KVMedium)(nil)

func (m *KVMedium) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := m.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return v, true, nil
}

func (m *KVMedium) Set(ctx context.Context, key, value string) error {
	if m.maxValue > 0 && len(value) > m.maxValue {
		return fmt.Errorf("set %q: %d bytes: %w", key, len(value), archive.ErrQuotaExceeded)
	}
	_, err := m.db.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		if isDiskFull(err) {
			return fmt.Errorf("set %q: %w: %w", key, archive.ErrQuotaExceeded, err)
		}
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (m *KVMedium) Remove(ctx context.Context, key string) error {
	if _, err := m.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

func isDiskFull(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()&0xff == sqlite3.SQLITE_FULL
	}
	return false
}
