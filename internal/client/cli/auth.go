package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/postbox/internal/common"
)

var errEmptyUsername = errors.New("username must not be empty")

func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}
	if username == "" {
		return errEmptyUsername
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	privateKey, err := getSimpleText(a.reader, "Private key (optional)", a.out)
	if err != nil {
		return err
	}
	publicKey, err := getSimpleText(a.reader, "Public key (optional)", a.out)
	if err != nil {
		return err
	}

	u, err := a.api.Register(ctx, username, string(password), privateKey, publicKey)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Registered %s (id %d). You can now login.", u.Username, u.ID))
	return nil
}

func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	if username == "" {
		return errEmptyUsername
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.api.Login(ctx, username, string(password))
	if err != nil {
		return err
	}

	a.user = u
	a.lastQueryTime = 0
	a.setMode(ModeOnline)
	printlnFn("Success!")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.user = nil
	a.lastQueryTime = 0
	printlnFn("Logged out")
	return nil
}
