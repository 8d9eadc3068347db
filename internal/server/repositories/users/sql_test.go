package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/postbox/internal/common"
	"github.com/dmitrijs2005/postbox/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertQuery = `(?s)^INSERT INTO users \(username,\s*password_hash,\s*salt,\s*private_key,\s*public_key,\s*info\) VALUES \(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\) RETURNING id$`
	selectQuery = `(?s)^SELECT id, username, password_hash, salt, private_key, public_key, info FROM users WHERE username = \$1$`
	updateQuery = `(?s)^UPDATE users SET info = \$1 WHERE id = \$2 RETURNING id, username, password_hash, salt, private_key, public_key, info$`
)

var userRowColumns = []string{"id", "username", "password_hash", "salt", "private_key", "public_key", "info"}

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLRepository(db, sq.StatementBuilder.PlaceholderFormat(sq.Dollar)), mock
}

func newUser() *models.User {
	return &models.User{
		UserName:     "alice",
		PasswordHash: []byte("hash"),
		Salt:         []byte("salt"),
		PrivateKey:   "priv",
		PublicKey:    "pub",
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQuery).
		WithArgs("alice", []byte("hash"), []byte("salt"), "priv", "pub", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	got, err := repo.Create(context.Background(), newUser())
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, "alice", got.UserName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateUsername(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQuery).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	_, err := repo.Create(context.Background(), newUser())
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQuery).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), newUser())
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestGetUserByLogin_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectQuery).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(int64(1), "alice", []byte("hash"), []byte("salt"), "priv", "pub", "info"))

	got, err := repo.GetUserByLogin(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, &models.User{
		ID: 1, UserName: "alice", PasswordHash: []byte("hash"), Salt: []byte("salt"),
		PrivateKey: "priv", PublicKey: "pub", Info: "info",
	}, got)
}

func TestGetUserByLogin_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectQuery).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByLogin(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetUserByLogin_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectQuery).WithArgs("alice").WillReturnError(errors.New("db err"))

	_, err := repo.GetUserByLogin(context.Background(), "alice")
	require.Error(t, err)
	assert.Regexp(t, `db error: .*db err`, err.Error())
}

func TestUpdateInfo_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(updateQuery).
		WithArgs("new info", int64(1)).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(int64(1), "alice", []byte("hash"), []byte("salt"), "priv", "pub", "new info"))

	got, err := repo.UpdateInfo(context.Background(), 1, "new info")
	require.NoError(t, err)
	assert.Equal(t, "new info", got.Info)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateInfo_UnknownUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(updateQuery).WithArgs("x", int64(99)).WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateInfo(context.Background(), 99, "x")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
