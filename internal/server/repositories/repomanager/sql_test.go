package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/postbox/internal/logging"
	"github.com/dmitrijs2005/postbox/internal/server/repositories/messages"
	"github.com/dmitrijs2005/postbox/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestNewSQLRepositoryManager_UnknownDriver(t *testing.T) {
	_, err := NewSQLRepositoryManager("mysql", logging.Nop{})
	assert.ErrorContains(t, err, `unsupported database driver "mysql"`)
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db := newDB(t)

	for _, driver := range []string{"pgx", "sqlite"} {
		m, err := NewSQLRepositoryManager(driver, logging.Nop{})
		require.NoError(t, err)

		var u users.Repository = m.Users(db)
		var msg messages.Repository = m.Messages(db)
		assert.NotNil(t, u)
		assert.NotNil(t, msg)
	}
}

func TestRunMigrations_UsesDialectDirectory(t *testing.T) {
	db := newDB(t)

	cases := map[string]string{"pgx": "postgres", "sqlite": "sqlite"}
	for driver, wantDir := range cases {
		var gotDir string
		stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
			gotDir = dir
			return nil
		})

		m, err := NewSQLRepositoryManager(driver, logging.Nop{})
		require.NoError(t, err)
		require.NoError(t, m.RunMigrations(context.Background(), db))
		assert.Equal(t, wantDir, gotDir, driver)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db := newDB(t)
	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	})

	m, err := NewSQLRepositoryManager("pgx", logging.Nop{})
	require.NoError(t, err)

	err = m.RunMigrations(context.Background(), db)
	assert.EqualError(t, err, "migrations: boom")
}

func TestRunMigrations_SQLiteEndToEnd(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, "sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	defer db.Close()

	m, err := NewSQLRepositoryManager("sqlite", logging.Nop{})
	require.NoError(t, err)
	require.NoError(t, m.RunMigrations(ctx, db))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages").Scan(&n))
	assert.Equal(t, 0, n)

	// re-running is a no-op
	require.NoError(t, m.RunMigrations(ctx, db))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "x")
	assert.Error(t, err)
}

type recordedLine struct {
	level, msg string
	args       []any
}

type recordingLogger struct {
	mu    *sync.Mutex
	lines *[]recordedLine
	args  []any
}

func newRecordingLogger() recordingLogger {
	return recordingLogger{mu: &sync.Mutex{}, lines: &[]recordedLine{}}
}

func (r recordingLogger) record(level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.lines = append(*r.lines, recordedLine{level: level, msg: msg, args: append(append([]any{}, r.args...), args...)})
}

func (r recordingLogger) Debug(_ context.Context, msg string, args ...any) { r.record("debug", msg, args) }
func (r recordingLogger) Info(_ context.Context, msg string, args ...any)  { r.record("info", msg, args) }
func (r recordingLogger) Warn(_ context.Context, msg string, args ...any)  { r.record("warn", msg, args) }
func (r recordingLogger) Error(_ context.Context, msg string, args ...any) { r.record("error", msg, args) }
func (r recordingLogger) With(args ...any) logging.Logger {
	r.args = append(append([]any{}, r.args...), args...)
	return r
}

func TestRunMigrations_LogsThroughAppLogger(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, "sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	defer db.Close()

	rec := newRecordingLogger()
	m, err := NewSQLRepositoryManager("sqlite", rec)
	require.NoError(t, err)
	require.NoError(t, m.RunMigrations(ctx, db))

	require.NotEmpty(t, *rec.lines)
	for _, l := range *rec.lines {
		assert.Equal(t, "info", l.level)
		assert.Equal(t, []any{"module", "migrations"}, l.args)
		assert.NotContains(t, l.msg, "\n")
	}
}

func TestGooseLogger_Fatalf(t *testing.T) {
	var code int
	orig := exitFn
	exitFn = func(c int) { code = c }
	t.Cleanup(func() { exitFn = orig })

	rec := newRecordingLogger()
	gooseLogger{ctx: context.Background(), logger: rec}.Fatalf("failed %s\n", "00001")

	assert.Equal(t, 1, code)
	require.Len(t, *rec.lines, 1)
	assert.Equal(t, recordedLine{level: "error", msg: "failed 00001", args: []any{}}, (*rec.lines)[0])
}
