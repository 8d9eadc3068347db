// Package auth turns the credential headers of a request into a Principal.
// The token is the account password; it is verified against the stored
// salted hash on every call and nothing is remembered between calls.
package auth

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/postbox/internal/common"
	"github.com/dmitrijs2005/postbox/internal/cryptox"
	"github.com/dmitrijs2005/postbox/internal/logging"
	"github.com/dmitrijs2005/postbox/internal/server/models"
)

// Credentials is the part of the credential store the authenticator needs.
type Credentials interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

type Authenticator struct {
	creds  Credentials
	logger logging.Logger
	// decoy stands in for unknown users so that a miss costs one password
	// hash, the same as a wrong password.
	decoy *models.User
}

func NewAuthenticator(creds Credentials, logger logging.Logger) *Authenticator {
	return &Authenticator{
		creds:  creds,
		logger: logger.With("module", "auth"),
		decoy:  &models.User{Salt: cryptox.NewSalt()},
	}
}

// Authenticate resolves username and token into a Principal. A missing
// field, an unknown user and a wrong password all yield
// common.ErrorUnauthorized; storage failures yield common.ErrorInternal.
func (a *Authenticator) Authenticate(ctx context.Context, username, token string) (Principal, error) {
	if username == "" || token == "" {
		a.logger.Warn(ctx, "missing credentials", "username", username)
		return Principal{}, common.ErrorUnauthorized
	}

	user, err := a.creds.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			a.creds.VerifyPassword(a.decoy, token)
			a.logger.Warn(ctx, "authentication failed", "username", username)
			return Principal{}, common.ErrorUnauthorized
		}
		a.logger.Error(ctx, "user lookup failed", "username", username, "error", err)
		return Principal{}, common.ErrorInternal
	}

	if !a.creds.VerifyPassword(user, token) {
		a.logger.Warn(ctx, "authentication failed", "username", username)
		return Principal{}, common.ErrorUnauthorized
	}

	return NewPrincipal(user), nil
}
