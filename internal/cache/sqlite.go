// Package cache provides a SQLite-backed response cache for the Dotlas
// client, so repeated notebook queries don't burn API quota.
package cache

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLite implements dotlas.Cache using modernc.org/sqlite. Entries expire
// after the configured TTL; lookups never fail a call, a broken cache reads
// as a miss.
type SQLite struct {
	db  *sql.DB
	ttl time.Duration
}

// New opens (or creates) a SQLite cache at the given path and configures
// WAL mode.
func New(path string, ttl time.Duration) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "cache: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "cache: exec %s", pragma)
		}
	}

	c := &SQLite{db: db, ttl: ttl}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS responses (
	key        TEXT PRIMARY KEY,
	id         TEXT NOT NULL,
	body       BLOB NOT NULL,
	cached_at  INTEGER NOT NULL,
	expires_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_responses_expires_at ON responses(expires_at);
`

func (c *SQLite) migrate() error {
	_, err := c.db.Exec(migration)
	return eris.Wrap(err, "cache: migrate")
}

// Get returns the cached body for key if present and unexpired.
func (c *SQLite) Get(ctx context.Context, key string) ([]byte, bool) {
	var body []byte
	err := c.db.QueryRowContext(ctx,
		`SELECT body FROM responses WHERE key = ? AND expires_at > ?`,
		key, time.Now().Unix(),
	).Scan(&body)
	if err != nil {
		if err != sql.ErrNoRows {
			zap.L().Warn("cache: lookup failed", zap.Error(err))
		}
		return nil, false
	}

	keyPrefix := key
	if len(keyPrefix) > 12 {
		keyPrefix = keyPrefix[:12]
	}
	zap.L().Debug("cache hit", zap.String("key", keyPrefix))
	return body, true
}

// Put stores a response body under key, replacing any previous entry.
func (c *SQLite) Put(ctx context.Context, key string, body []byte) error {
	now := time.Now()
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO responses (key, id, body, cached_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			body = excluded.body,
			cached_at = excluded.cached_at,
			expires_at = excluded.expires_at`,
		key, uuid.NewString(), body, now.Unix(), now.Add(c.ttl).Unix(),
	)
	return eris.Wrap(err, "cache: put")
}

// Prune deletes expired entries and returns how many were removed.
func (c *SQLite) Prune(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM responses WHERE expires_at <= ?`, time.Now().Unix())
	if err != nil {
		return 0, eris.Wrap(err, "cache: prune")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "cache: rows affected")
	}
	return n, nil
}

func (c *SQLite) Close() error {
	return c.db.Close()
}
