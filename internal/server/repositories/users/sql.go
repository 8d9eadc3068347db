// Package users persists user accounts.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/postbox/internal/common"
	"github.com/dmitrijs2005/postbox/internal/dbx"
	"github.com/dmitrijs2005/postbox/internal/server/models"
)

var userColumns = []string{"id", "username", "password_hash", "salt", "private_key", "public_key", "info"}

type SQLRepository struct {
	db dbx.DBTX
	sb sq.StatementBuilderType
}

func NewSQLRepository(db dbx.DBTX, sb sq.StatementBuilderType) *SQLRepository {
	return &SQLRepository{db: db, sb: sb}
}

// Create inserts user and fills in its ID. A taken username yields
// common.ErrorAlreadyExists.
func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query, args, err := r.sb.Insert("users").
		Columns("username", "password_hash", "salt", "private_key", "public_key", "info").
		Values(user.UserName, user.PasswordHash, user.Salt, user.PrivateKey, user.PublicKey, user.Info).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	query, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(sq.Eq{"username": userName}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	return scanUser(r.db.QueryRowContext(ctx, query, args...))
}

// UpdateInfo replaces the info blob of userID and returns the stored row.
func (r *SQLRepository) UpdateInfo(ctx context.Context, userID int64, info string) (*models.User, error) {
	query, args, err := r.sb.Update("users").
		Set("info", info).
		Where(sq.Eq{"id": userID}).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	return scanUser(r.db.QueryRowContext(ctx, query, args...))
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.UserName, &user.PasswordHash, &user.Salt,
		&user.PrivateKey, &user.PublicKey, &user.Info)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}
