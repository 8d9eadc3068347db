package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/postbox/internal/common"
	"github.com/dmitrijs2005/postbox/internal/dbx"
	"github.com/dmitrijs2005/postbox/internal/server/auth"
	"github.com/dmitrijs2005/postbox/internal/server/models"
	"github.com/dmitrijs2005/postbox/internal/server/repositories/repomanager"
)

// MaxContentsLength bounds a message body, in characters.
const MaxContentsLength = 4096

// MessageService manages mailboxes. Every operation is scoped to the
// principal: messages are sent from it and read or deleted only where it is
// the recipient.
type MessageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	clock       func() time.Time
}

func NewMessageService(db *sql.DB, m repomanager.RepositoryManager) *MessageService {
	return &MessageService{
		db:          db,
		repomanager: m,
		clock:       time.Now,
	}
}

// Send stores a message from p to recipient. An unknown recipient yields
// common.ErrorNotFound and sending to oneself yields common.ErrorSelfSend.
func (s *MessageService) Send(ctx context.Context, p auth.Principal, recipient, contents string) (*models.Message, error) {
	if utf8.RuneCountInString(contents) > MaxContentsLength {
		return nil, common.ErrorContentsTooLong
	}

	var msg *models.Message

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		to, err := s.repomanager.Users(tx).GetUserByLogin(ctx, recipient)
		if err != nil {
			return err
		}
		if to.UserName == p.Username() {
			return common.ErrorSelfSend
		}

		msg, err = s.repomanager.Messages(tx).Create(ctx, &models.Message{
			FromUser: p.Username(),
			ToUser:   to.UserName,
			Contents: contents,
			SentAt:   s.clock().Unix(),
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error sending message: %w", err)
	}

	return msg, nil
}

// ListInbox returns the most recent messages addressed to p. QueryTime is
// read from the clock before the query runs, so passing it to DeleteUpTo
// never removes a message the caller has not seen.
func (s *MessageService) ListInbox(ctx context.Context, p auth.Principal) (*models.Inbox, error) {
	queryTime := s.clock().Unix()

	items, err := s.repomanager.Messages(s.db).SelectInbox(ctx, p.Username(), common.InboxWindow)
	if err != nil {
		return nil, fmt.Errorf("error listing inbox: %w", err)
	}

	return &models.Inbox{QueryTime: queryTime, Messages: items}, nil
}

// DeleteUpTo removes the messages addressed to p with sent_at strictly less
// than cutoff and returns how many were removed.
func (s *MessageService) DeleteUpTo(ctx context.Context, p auth.Principal, cutoff int64) (int64, error) {
	var deleted int64

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		deleted, err = s.repomanager.Messages(tx).DeleteUpTo(ctx, p.Username(), cutoff)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("error deleting messages: %w", err)
	}

	return deleted, nil
}

// ParseCutoff parses a unix timestamp in seconds. Anything but a plain
// base-10 integer yields common.ErrorInvalidCutoff.
func ParseCutoff(raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, common.ErrorInvalidCutoff
	}
	return v, nil
}
