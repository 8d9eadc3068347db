// Driver-neutral classification of constraint violations for the pgx and
// sqlite drivers.

package dbx

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// PostgreSQL SQLSTATE codes for integrity constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err was caused by a UNIQUE or PRIMARY KEY
// constraint, on either supported driver.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
		return isConstraint(liteErr) && strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
	}

	return false
}

// IsForeignKeyViolation reports whether err was caused by a FOREIGN KEY
// constraint, on either supported driver.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		if liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
			return true
		}
		return isConstraint(liteErr) && strings.Contains(liteErr.Error(), "FOREIGN KEY constraint failed")
	}

	return false
}

// isConstraint covers connections where extended result codes are off and
// only the primary SQLITE_CONSTRAINT code is reported.
func isConstraint(err *sqlite.Error) bool {
	return err.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
