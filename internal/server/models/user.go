package models

// User is a registered account. PasswordHash and Salt never leave the server.
type User struct {
	ID           int64
	UserName     string
	PasswordHash []byte
	Salt         []byte
	PrivateKey   string
	PublicKey    string
	Info         string
}

// PublicUser is what any authenticated caller may see about a user.
type PublicUser struct {
	ID        int64  `json:"id"`
	UserName  string `json:"username"`
	PublicKey string `json:"public_key"`
}

// PrivateUser is the owner's view of their own record.
type PrivateUser struct {
	PublicUser
	PrivateKey string `json:"private_key"`
	Info       string `json:"info"`
}

// Public renders the fields visible to any authenticated principal.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, UserName: u.UserName, PublicKey: u.PublicKey}
}

// Private renders the owner view. Callers must only use it when the viewer
// is the user itself.
func (u *User) Private() PrivateUser {
	return PrivateUser{PublicUser: u.Public(), PrivateKey: u.PrivateKey, Info: u.Info}
}
