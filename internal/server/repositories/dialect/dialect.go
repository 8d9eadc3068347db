// Package dialect maps a configured database driver onto the pieces that
// differ between SQL backends: placeholder style, goose dialect and the
// migrations directory.
package dialect

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Supported database/sql driver names.
const (
	Postgres = "pgx"
	SQLite   = "sqlite"
)

// Dialect describes one supported backend.
type Dialect struct {
	Driver        string
	GooseDialect  string
	MigrationsDir string
	Builder       sq.StatementBuilderType
}

// For returns the Dialect registered for driver.
func For(driver string) (Dialect, error) {
	switch driver {
	case Postgres:
		return Dialect{
			Driver:        Postgres,
			GooseDialect:  "pgx",
			MigrationsDir: "postgres",
			Builder:       sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		}, nil
	case SQLite:
		return Dialect{
			Driver:        SQLite,
			GooseDialect:  "sqlite3",
			MigrationsDir: "sqlite",
			Builder:       sq.StatementBuilder.PlaceholderFormat(sq.Question),
		}, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// DSN adjusts a connection string for driver. SQLite connections get foreign
// key enforcement and a busy timeout, both of which are per-connection
// settings in SQLite.
func DSN(driver, dsn string) string {
	if driver != SQLite {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	if !strings.Contains(dsn, "foreign_keys") {
		dsn += sep + "_pragma=foreign_keys(1)"
		sep = "&"
	}
	if !strings.Contains(dsn, "busy_timeout") {
		dsn += sep + "_pragma=busy_timeout(5000)"
	}
	return dsn
}
