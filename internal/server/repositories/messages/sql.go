// Package messages persists messages. Every read and delete is keyed on the
// recipient username, so one user's mailbox is never reachable through
// another user's query.
package messages

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/postbox/internal/common"
	"github.com/dmitrijs2005/postbox/internal/dbx"
	"github.com/dmitrijs2005/postbox/internal/server/models"
)

// SQLRepository implements message storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db dbx.DBTX
	sb sq.StatementBuilderType
}

// NewSQLRepository constructs a repository bound to the given DBTX and
// placeholder dialect.
func NewSQLRepository(db dbx.DBTX, sb sq.StatementBuilderType) *SQLRepository {
	return &SQLRepository{db: db, sb: sb}
}

// Create inserts msg and fills in its ID. A sender or recipient that does not
// exist yields common.ErrorIntegrity.
func (r *SQLRepository) Create(ctx context.Context, msg *models.Message) (*models.Message, error) {
	query, args, err := r.sb.Insert("messages").
		Columns("from_user", "to_user", "contents", "sent_at").
		Values(msg.FromUser, msg.ToUser, msg.Contents, msg.SentAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&msg.ID); err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorIntegrity
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return msg, nil
}

// SelectInbox returns up to limit messages addressed to toUser, newest first.
// Messages sharing a timestamp are ordered by descending id, i.e. the most
// recently inserted first.
func (r *SQLRepository) SelectInbox(ctx context.Context, toUser string, limit uint64) ([]*models.Message, error) {
	query, args, err := r.sb.Select("id", "from_user", "to_user", "contents", "sent_at").
		From("messages").
		Where(sq.Eq{"to_user": toUser}).
		OrderBy("sent_at DESC", "id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select messages: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Message, 0)
	for rows.Next() {
		var item models.Message
		if err := rows.Scan(&item.ID, &item.FromUser, &item.ToUser, &item.Contents, &item.SentAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteUpTo removes the messages addressed to toUser that were sent strictly
// before cutoff and reports how many were removed.
func (r *SQLRepository) DeleteUpTo(ctx context.Context, toUser string, cutoff int64) (int64, error) {
	query, args, err := r.sb.Delete("messages").
		Where(sq.Eq{"to_user": toUser}).
		Where(sq.Lt{"sent_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
