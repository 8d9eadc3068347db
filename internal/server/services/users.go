package services

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/dmitrijs2005/postbox/internal/common"
	"github.com/dmitrijs2005/postbox/internal/cryptox"
	"github.com/dmitrijs2005/postbox/internal/dbx"
	"github.com/dmitrijs2005/postbox/internal/server/auth"
	"github.com/dmitrijs2005/postbox/internal/server/models"
	"github.com/dmitrijs2005/postbox/internal/server/repositories/repomanager"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,32}$`)

// MaxKeyLength bounds the private and public key blobs, in characters.
const MaxKeyLength = 4096

// UserService is the credential store: registration, lookup, password
// verification and the owner-only info update.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      cryptox.PasswordHasher
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher cryptox.PasswordHasher) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
	}
}

// Register validates and stores a new account. A taken username yields an
// error matching common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password, privateKey, publicKey string) (*models.User, error) {
	if !usernamePattern.MatchString(username) {
		return nil, common.ErrorInvalidUsername
	}
	if password == "" {
		return nil, common.ErrorEmptyPassword
	}
	if utf8.RuneCountInString(privateKey) > MaxKeyLength || utf8.RuneCountInString(publicKey) > MaxKeyLength {
		return nil, common.ErrorKeyTooLong
	}

	salt := cryptox.NewSalt()
	user := &models.User{
		UserName:     username,
		PasswordHash: s.hasher.Hash([]byte(password), salt),
		Salt:         salt,
		PrivateKey:   privateKey,
		PublicKey:    publicKey,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.repomanager.Users(tx).Create(ctx, user)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// FindByUsername returns an error matching common.ErrorNotFound on a miss.
func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return user, nil
}

// VerifyPassword reports whether password hashes to the stored hash of user.
func (s *UserService) VerifyPassword(user *models.User, password string) bool {
	return s.hasher.Verify(user.PasswordHash, user.Salt, []byte(password))
}

// UpdateInfo replaces the info blob of the principal's own record and
// returns the stored row.
func (s *UserService) UpdateInfo(ctx context.Context, p auth.Principal, info string) (*models.User, error) {
	var user *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.repomanager.Users(tx).UpdateInfo(ctx, p.ID(), info)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error updating info: %w", err)
	}

	return user, nil
}
