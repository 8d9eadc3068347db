package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/postbox/internal/dbx"
	"github.com/dmitrijs2005/postbox/internal/logging"
	"github.com/dmitrijs2005/postbox/internal/server/migrations"
	"github.com/dmitrijs2005/postbox/internal/server/repositories/dialect"
	"github.com/dmitrijs2005/postbox/internal/server/repositories/messages"
	"github.com/dmitrijs2005/postbox/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLRepositoryManager vends SQL-backed repositories for one dialect.
type SQLRepositoryManager struct {
	dialect dialect.Dialect
	logger  logging.Logger
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect.Builder)
}

// Messages returns a messages.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Messages(db dbx.DBTX) messages.Repository {
	return messages.NewSQLRepository(db, m.dialect.Builder)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// exitFn is a seam for os.Exit in gooseLogger.Fatalf.
var exitFn = os.Exit

// gooseLogger routes goose output through the application logger.
type gooseLogger struct {
	ctx    context.Context
	logger logging.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.logger.Info(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.logger.Error(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
	exitFn(1)
}

// RunMigrations applies the embedded migrations of the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetLogger(gooseLogger{ctx: ctx, logger: m.logger})
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect.GooseDialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, m.dialect.MigrationsDir); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for driver.
// Migration progress is written to logger.
func NewSQLRepositoryManager(driver string, logger logging.Logger) (RepositoryManager, error) {
	d, err := dialect.For(driver)
	if err != nil {
		return nil, err
	}
	return &SQLRepositoryManager{dialect: d, logger: logger.With("module", "migrations")}, nil
}

// Open opens and pings a database for driver. SQLite is limited to a single
// connection so that writers queue in database/sql instead of failing with
// SQLITE_BUSY.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if _, err := dialect.For(driver); err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dialect.DSN(driver, dsn))
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if driver == dialect.SQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}
