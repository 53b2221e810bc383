package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/barangan-student/siaa-project09/internal/core/domain"
	"github.com/barangan-student/siaa-project09/internal/core/ports"
)

// user_groups carries created_at so membership order is explicit rather than
// whatever row order the engine happens to return; rowid breaks ties for
// inserts within the same millisecond.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS groups (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS user_groups (
	user_id INTEGER NOT NULL REFERENCES users(id),
	group_id INTEGER NOT NULL REFERENCES groups(id),
	created_at INTEGER NOT NULL,
	PRIMARY KEY (user_id, group_id)
);
`

// EnsureSchema idempotently creates the relations. Concurrent startup races
// are absorbed by IF NOT EXISTS.
func (s *CredentialStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return storageErr("ensure schema", err)
	}
	return nil
}

// SeedDefaults inserts the default groups and accounts when absent, keyed by
// their unique names. Runs in one transaction so repeated or concurrent
// bootstrap never duplicates or half-writes the dataset.
func (s *CredentialStore) SeedDefaults(ctx context.Context, groups []string, users []ports.SeedUser) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("seed defaults", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, name := range groups {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO groups (name) VALUES (?)`, name); err != nil {
			return storageErr("seed group", err)
		}
	}

	for _, u := range users {
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO users (username, password_hash) VALUES (?, ?)`,
			u.Username, u.PasswordHash)
		if err != nil {
			return storageErr("seed user", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return storageErr("seed user", err)
		}
		if n == 0 {
			// Account already present: leave its hash and memberships alone.
			continue
		}

		var userID, groupID int64
		if err := tx.QueryRowContext(ctx, `SELECT id FROM users WHERE username = ?`, u.Username).Scan(&userID); err != nil {
			return storageErr("seed user lookup", err)
		}
		if err := tx.QueryRowContext(ctx, `SELECT id FROM groups WHERE name = ?`, u.Group).Scan(&groupID); err != nil {
			return storageErr("seed group lookup", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO user_groups (user_id, group_id, created_at) VALUES (?, ?, ?)`,
			userID, groupID, time.Now().UnixMilli()); err != nil {
			return storageErr("seed membership", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("seed defaults", err)
	}
	return nil
}

func (s *CredentialStore) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var u domain.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, storageErr("find user", err)
	}
	return &u, nil
}

func (s *CredentialStore) FindGroupByName(ctx context.Context, name string) (*domain.Group, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var g domain.Group
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM groups WHERE name = ?`, name).
		Scan(&g.ID, &g.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrGroupNotFound
	}
	if err != nil {
		return nil, storageErr("find group", err)
	}
	return &g, nil
}

// InsertUser relies on the unique constraint on username for duplicate
// detection, so concurrent inserts of the same name cannot both succeed.
func (s *CredentialStore) InsertUser(ctx context.Context, username, passwordHash string) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?)`, username, passwordHash)
	if err != nil {
		if isUniqueConstraintError(err) {
			return 0, domain.ErrUserExists
		}
		return 0, storageErr("insert user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("insert user", err)
	}
	return id, nil
}

// AddMembership is idempotent: re-adding an existing pair is a no-op.
func (s *CredentialStore) AddMembership(ctx context.Context, userID, groupID int64) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_groups (user_id, group_id, created_at) VALUES (?, ?, ?)`,
		userID, groupID, time.Now().UnixMilli())
	if err != nil {
		return storageErr("add membership", err)
	}
	return nil
}

// MembershipsOf returns the user's groups in membership insertion order.
func (s *CredentialStore) MembershipsOf(ctx context.Context, userID int64) ([]domain.Group, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.name
		FROM groups g
		JOIN user_groups ug ON g.id = ug.group_id
		WHERE ug.user_id = ?
		ORDER BY ug.created_at, ug.rowid`, userID)
	if err != nil {
		return nil, storageErr("memberships", err)
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, storageErr("memberships", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("memberships", err)
	}
	return groups, nil
}

func (s *CredentialStore) IsMember(ctx context.Context, userID int64, groupName string) (bool, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM user_groups ug
		JOIN groups g ON ug.group_id = g.id
		WHERE ug.user_id = ? AND g.name = ?`, userID, groupName).Scan(&n)
	if err != nil {
		return false, storageErr("is member", err)
	}
	return n > 0, nil
}
