// Package sqlite implements the credential store over a single SQLite file.
// The engine's unique constraints are the only duplicate detection used, so
// concurrent registrations never race a check-then-insert.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/barangan-student/siaa-project09/internal/core/domain"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings for opening the credential database.
type Config struct {
	// Path is the SQLite database file. Created if absent.
	Path string
	// Timeout bounds every storage call. Defaults to 5s when zero.
	Timeout time.Duration
}

// CredentialStore is the SQLite-backed implementation of
// ports.CredentialStore.
type CredentialStore struct {
	db      *sql.DB
	timeout time.Duration
}

// Open opens (creating if needed) the database file and verifies it is
// usable. Failure here is domain.ErrStorageUnavailable: fatal, no degraded
// mode.
func Open(cfg Config) (*CredentialStore, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("%w: database path is required", domain.ErrStorageUnavailable)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	dsn := filepath.Clean(cfg.Path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrStorageUnavailable, cfg.Path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", domain.ErrStorageUnavailable, cfg.Path, err)
	}

	return &CredentialStore{db: db, timeout: timeout}, nil
}

// Close releases the underlying database handle.
func (s *CredentialStore) Close() error {
	return s.db.Close()
}

// Ping reports connectivity for readiness probes.
func (s *CredentialStore) Ping(ctx context.Context) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		return storageErr("ping", err)
	}
	return nil
}

// opCtx applies the per-call timeout so no storage operation can hang the
// caller.
func (s *CredentialStore) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// storageErr maps driver failures onto the domain taxonomy: deadline expiry
// and lock contention surface as ErrStorageUnavailable, everything else is
// wrapped with the operation name.
func storageErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || isBusyError(err) {
		return fmt.Errorf("%w: %s: %v", domain.ErrStorageUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUniqueConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT ||
		code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func isBusyError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
}
