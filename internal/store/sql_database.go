package store

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/avkhasev/tasktrack/internal/config"
	"github.com/avkhasev/tasktrack/internal/logger"
)

// DB wraps the standard *sql.DB together with the squirrel statement builder
// configured for the active driver's placeholder format ($1 for PostgreSQL,
// ? for SQLite). Repositories embed this type and build every query through
// the builder, so the same repository code runs unchanged on both backends.
type DB struct {
	*sql.DB

	builder sq.StatementBuilderType
	driver  string
	logger  *logger.Logger
}

// NewConnect opens a database connection for the configured DSN.
//
// A DSN starting with "postgres://" or "postgresql://" selects the pgx
// driver and runs the goose migrations; any other non-empty value is
// treated as a SQLite file path (":memory:" included) and the schema is
// bootstrapped inline.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if isPostgresDSN(cfg.DSN) {
		return NewConnectPostgres(ctx, cfg, log)
	}

	return NewConnectSQLite(ctx, cfg, log)
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
