package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/avkhasev/tasktrack/internal/config"
	"github.com/avkhasev/tasktrack/internal/logger"
	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
)

// sqliteBootstrapSchema mirrors the goose PostgreSQL migrations in SQLite
// dialect. The embedded backend is the development default (the DSN is a
// plain file path), so the schema is created inline instead of through the
// migration runner.
const sqliteBootstrapSchema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT      NOT NULL UNIQUE,
    email         TEXT      NOT NULL UNIQUE,
    password_hash TEXT      NOT NULL,
    full_name     TEXT      NOT NULL DEFAULT '',
    job_title     TEXT      NOT NULL DEFAULT '',
    bio           TEXT      NOT NULL DEFAULT '',
    website       TEXT      NOT NULL DEFAULT '',
    avatar_path   TEXT      NOT NULL DEFAULT '',
    created_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
    id           INTEGER PRIMARY KEY,
    user_id      INTEGER   NOT NULL REFERENCES users (id),
    title        TEXT      NOT NULL,
    description  TEXT      NOT NULL DEFAULT '',
    is_completed BOOLEAN   NOT NULL DEFAULT FALSE,
    priority     TEXT      NOT NULL DEFAULT 'medium'
        CHECK (priority IN ('low', 'medium', 'high', 'urgent')),
    category     TEXT      NOT NULL DEFAULT '',
    due_date     TIMESTAMP,
    created_at   TIMESTAMP NOT NULL,
    updated_at   TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks (user_id);
`

// NewConnectSQLite opens (or creates) a SQLite database at the file path
// given in the DSN and bootstraps the schema.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite3", cfg.DSN+"?_foreign_keys=on&_loc=UTC")
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	// a single writer avoids SQLITE_BUSY under concurrent requests
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}

	if _, err = conn.ExecContext(ctx, sqliteBootstrapSchema); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error bootstrapping sqlite schema")
		return nil, fmt.Errorf("error bootstrapping sqlite schema: %w", err)
	}
	log.Info().Str("func", "NewConnectSQLite").Str("path", cfg.DSN).Msg("connected to sqlite database")

	db := &DB{
		DB:      conn,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		driver:  "sqlite3",
		logger:  log,
	}

	return db, nil
}

// isUniqueViolation reports whether err is a uniqueness-constraint failure
// from either backend driver.
func isUniqueViolation(err error) bool {
	if postgresError(err) == pgerrcode.UniqueViolation {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}
