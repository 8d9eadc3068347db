package users

import (
	"context"

	"github.com/dmitrijs2005/postbox/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	UpdateInfo(ctx context.Context, userID int64, info string) (*models.User, error)
}
