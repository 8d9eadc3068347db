package messages

import (
	"context"

	"github.com/dmitrijs2005/postbox/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, msg *models.Message) (*models.Message, error)
	SelectInbox(ctx context.Context, toUser string, limit uint64) ([]*models.Message, error)
	DeleteUpTo(ctx context.Context, toUser string, cutoff int64) (int64, error)
}
