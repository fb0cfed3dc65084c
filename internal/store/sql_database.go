package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-contact-keeper/internal/config"
	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/MKhiriev/go-contact-keeper/migrations"
)

// dialect captures what differs between the supported SQL backends.
type dialect struct {
	name        string
	migrations  string
	placeholder sq.PlaceholderFormat
}

var (
	postgresDialect = dialect{name: "postgres", migrations: migrations.DialectPostgres, placeholder: sq.Dollar}
	sqliteDialect   = dialect{name: "sqlite", migrations: migrations.DialectSQLite, placeholder: sq.Question}
)

// DB is a connection pool together with its dialect specific helpers.
type DB struct {
	*sql.DB
	dialect            dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnectDB opens the database referenced by cfg.DSN. "postgres://" and
// "postgresql://" DSNs use pgx, "sqlite://<path>" uses go-sqlite3.
func NewConnectDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch {
	case strings.HasPrefix(cfg.DSN, "postgres://"), strings.HasPrefix(cfg.DSN, "postgresql://"):
		return NewConnectPostgres(ctx, cfg, log)
	case strings.HasPrefix(cfg.DSN, sqliteScheme):
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, ErrUnsupportedDSN
	}
}

// Migrate applies the embedded schema migrations of the DB dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect.migrations)
}

func (db *DB) conn() *conn {
	return newConn(db.DB, db.dialect, db.errorClassificator)
}

// conn is what repositories run against: a [Querier] plus the statement
// builder and error classifier of its dialect.
type conn struct {
	q  Querier
	sb sq.StatementBuilderType
	ec ErrorClassificator
}

func newConn(q Querier, d dialect, ec ErrorClassificator) *conn {
	return &conn{
		q:  q,
		sb: sq.StatementBuilder.PlaceholderFormat(d.placeholder),
		ec: ec,
	}
}

// wrap attaches base to a driver error, or [ErrStorageUnavailable] when the
// driver reports a transient condition.
func (c *conn) wrap(base, err error) error {
	if c.ec != nil && c.ec.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%w: %w", base, err)
}
