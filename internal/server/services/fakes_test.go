package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/postbox/internal/common"
	"github.com/dmitrijs2005/postbox/internal/cryptox"
	"github.com/dmitrijs2005/postbox/internal/dbx"
	"github.com/dmitrijs2005/postbox/internal/server/models"
	"github.com/dmitrijs2005/postbox/internal/server/repositories/messages"
	"github.com/dmitrijs2005/postbox/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

var fastHasher = cryptox.PasswordHasher{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	byName map[string]*models.User
	nextID int64

	createErr error
	getErr    error
	updateErr error

	created []*models.User
}

func newFakeUsersRepo(names ...string) *fakeUsersRepo {
	r := &fakeUsersRepo{byName: map[string]*models.User{}}
	for _, n := range names {
		r.nextID++
		r.byName[n] = &models.User{ID: r.nextID, UserName: n}
	}
	return r
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byName[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	u.ID = f.nextID
	f.byName[u.UserName] = u
	f.created = append(f.created, u)
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) UpdateInfo(_ context.Context, userID int64, info string) (*models.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for _, u := range f.byName {
		if u.ID == userID {
			u.Info = info
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeMessagesRepo struct {
	stored []*models.Message

	createErr error
	selectErr error
	deleteErr error

	selectedFor string
	selectLimit uint64
	deletedFor  string
	cutoff      int64
	deleted     int64
}

func (f *fakeMessagesRepo) Create(_ context.Context, m *models.Message) (*models.Message, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	m.ID = int64(len(f.stored) + 1)
	f.stored = append(f.stored, m)
	return m, nil
}

func (f *fakeMessagesRepo) SelectInbox(_ context.Context, toUser string, limit uint64) ([]*models.Message, error) {
	f.selectedFor, f.selectLimit = toUser, limit
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	out := make([]*models.Message, 0)
	for _, m := range f.stored {
		if m.ToUser == toUser {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessagesRepo) DeleteUpTo(_ context.Context, toUser string, cutoff int64) (int64, error) {
	f.deletedFor, f.cutoff = toUser, cutoff
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	return f.deleted, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	m *fakeMessagesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository            { return m.u }
func (m *fakeRepoManager) Messages(dbx.DBTX) messages.Repository      { return m.m }
