package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/postbox/internal/common"
	"github.com/dmitrijs2005/postbox/internal/server/auth"
	"github.com/dmitrijs2005/postbox/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessageService(t *testing.T, now int64) (*MessageService, *fakeUsersRepo, *fakeMessagesRepo, func(int64)) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 8; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}

	u := newFakeUsersRepo("alice", "bob")
	m := &fakeMessagesRepo{}
	s := NewMessageService(db, &fakeRepoManager{u: u, m: m})

	current := now
	s.clock = func() time.Time { return time.Unix(current, 0) }
	return s, u, m, func(v int64) { current = v }
}

func principal(u *fakeUsersRepo, name string) auth.Principal {
	return auth.NewPrincipal(u.byName[name])
}

func TestSend_Success(t *testing.T) {
	s, u, m, _ := newMessageService(t, 1000)

	msg, err := s.Send(context.Background(), principal(u, "alice"), "bob", "hi")
	require.NoError(t, err)
	assert.Equal(t, &models.Message{ID: 1, FromUser: "alice", ToUser: "bob", Contents: "hi", SentAt: 1000}, msg)
	require.Len(t, m.stored, 1)
}

func TestSend_EmptyContentsAllowed(t *testing.T) {
	s, u, _, _ := newMessageService(t, 1)

	_, err := s.Send(context.Background(), principal(u, "alice"), "bob", "")
	assert.NoError(t, err)
}

func TestSend_ContentsLimitCountsCharacters(t *testing.T) {
	s, u, _, _ := newMessageService(t, 1)

	_, err := s.Send(context.Background(), principal(u, "alice"), "bob", strings.Repeat("ж", MaxContentsLength))
	assert.NoError(t, err)

	_, err = s.Send(context.Background(), principal(u, "alice"), "bob", strings.Repeat("a", MaxContentsLength+1))
	assert.ErrorIs(t, err, common.ErrorContentsTooLong)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestSend_UnknownRecipient(t *testing.T) {
	s, u, m, _ := newMessageService(t, 1)

	_, err := s.Send(context.Background(), principal(u, "alice"), "carol", "hi")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Empty(t, m.stored)
}

func TestSend_Self(t *testing.T) {
	s, u, m, _ := newMessageService(t, 1)

	_, err := s.Send(context.Background(), principal(u, "alice"), "alice", "hi")
	assert.ErrorIs(t, err, common.ErrorSelfSend)
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.Empty(t, m.stored)
}

func TestSend_Integrity(t *testing.T) {
	s, u, m, _ := newMessageService(t, 1)
	m.createErr = common.ErrorIntegrity

	_, err := s.Send(context.Background(), principal(u, "alice"), "bob", "hi")
	assert.ErrorIs(t, err, common.ErrorIntegrity)
}

func TestListInbox_ScopedToPrincipal(t *testing.T) {
	s, u, m, setNow := newMessageService(t, 100)
	ctx := context.Background()

	_, err := s.Send(ctx, principal(u, "alice"), "bob", "for bob")
	require.NoError(t, err)
	setNow(150)
	_, err = s.Send(ctx, principal(u, "bob"), "alice", "for alice")
	require.NoError(t, err)
	setNow(200)

	inbox, err := s.ListInbox(ctx, principal(u, "bob"))
	require.NoError(t, err)
	assert.Equal(t, int64(200), inbox.QueryTime)
	require.Len(t, inbox.Messages, 1)
	assert.Equal(t, "for bob", inbox.Messages[0].Contents)
	assert.Equal(t, "bob", m.selectedFor)
	assert.Equal(t, uint64(common.InboxWindow), m.selectLimit)
}

func TestListInbox_QueryTimeCapturedBeforeRead(t *testing.T) {
	s, u, m, _ := newMessageService(t, 0)

	var ticks int64
	s.clock = func() time.Time {
		ticks++
		return time.Unix(ticks*10, 0)
	}

	inbox, err := s.ListInbox(context.Background(), principal(u, "bob"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), inbox.QueryTime)
	assert.Equal(t, "bob", m.selectedFor)
	assert.Equal(t, int64(1), ticks)
}

func TestListInbox_Error(t *testing.T) {
	s, u, m, _ := newMessageService(t, 0)
	m.selectErr = errors.New("boom")

	_, err := s.ListInbox(context.Background(), principal(u, "bob"))
	assert.ErrorContains(t, err, "error listing inbox: boom")
}

func TestDeleteUpTo(t *testing.T) {
	s, u, m, _ := newMessageService(t, 0)
	m.deleted = 2

	n, err := s.DeleteUpTo(context.Background(), principal(u, "bob"), 300)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, "bob", m.deletedFor)
	assert.Equal(t, int64(300), m.cutoff)
}

func TestDeleteUpTo_Error(t *testing.T) {
	s, u, m, _ := newMessageService(t, 0)
	m.deleteErr = errors.New("locked")

	_, err := s.DeleteUpTo(context.Background(), principal(u, "bob"), 300)
	assert.ErrorContains(t, err, "error deleting messages: locked")
}

func TestParseCutoff(t *testing.T) {
	v, err := ParseCutoff("1700000000")
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), v)

	v, err = ParseCutoff("-5")
	require.NoError(t, err)
	assert.Equal(t, int64(-5), v)

	for _, raw := range []string{"", "abc", "1.5", " 12", "12s", "99999999999999999999"} {
		_, err := ParseCutoff(raw)
		assert.ErrorIs(t, err, common.ErrorInvalidCutoff, raw)
	}
}
