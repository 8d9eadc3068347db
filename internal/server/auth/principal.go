package auth

import "github.com/dmitrijs2005/postbox/internal/server/models"

// Principal is the authenticated identity of one request. It is built fresh
// for every request and exposes accessors only; the credential material of
// the underlying user is not carried.
type Principal struct {
	id         int64
	username   string
	privateKey string
	publicKey  string
	info       string
}

// NewPrincipal snapshots the non-secret fields of u.
func NewPrincipal(u *models.User) Principal {
	return Principal{
		id:         u.ID,
		username:   u.UserName,
		privateKey: u.PrivateKey,
		publicKey:  u.PublicKey,
		info:       u.Info,
	}
}

func (p Principal) ID() int64        { return p.id }
func (p Principal) Username() string { return p.username }

// User returns a fresh copy of the principal's own record, suitable for the
// owner view. PasswordHash and Salt are always empty.
func (p Principal) User() *models.User {
	return &models.User{
		ID:         p.id,
		UserName:   p.username,
		PrivateKey: p.privateKey,
		PublicKey:  p.publicKey,
		Info:       p.info,
	}
}
