package client

import "context"

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Register(ctx context.Context, username, password, privateKey, publicKey string) (*User, error)
	Login(ctx context.Context, username, password string) (*User, error)
	Logout()
	Me(ctx context.Context) (*User, error)
	UpdateInfo(ctx context.Context, info string) (*User, error)
	Friend(ctx context.Context, username string) (*User, error)
	Send(ctx context.Context, recipient, contents string) (*Message, error)
	Inbox(ctx context.Context) (*Inbox, error)
	DeleteUpTo(ctx context.Context, until int64) (int64, error)
}
