package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/postbox/internal/client/client"
)

func (a *App) Me(ctx context.Context) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	a.user = u
	printUser(u)
	return nil
}

func (a *App) Info(ctx context.Context) error {
	info, err := getMultiline(a.reader, "Enter profile info", a.out)
	if err != nil {
		return err
	}

	u, err := a.api.UpdateInfo(ctx, info)
	if err != nil {
		return err
	}
	a.user = u
	printlnFn("Info saved")
	return nil
}

func (a *App) Friend(ctx context.Context, args []string) error {
	username, err := a.argOrPrompt(args, "Username")
	if err != nil {
		return err
	}

	u, err := a.api.Friend(ctx, username)
	if errors.Is(err, client.ErrNotFound) {
		printlnFn("No such user:", username)
		return nil
	}
	if err != nil {
		return err
	}
	printUser(u)
	return nil
}

func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", errEmptyUsername
	}
	return v, nil
}

func printUser(u *client.User) {
	printlnFn(fmt.Sprintf("#%d %s", u.ID, u.Username))
	if u.PublicKey != "" {
		printlnFn("  public key: " + u.PublicKey)
	}
	if u.PrivateKey != "" {
		printlnFn("  private key: " + u.PrivateKey)
	}
	if u.Info != "" {
		printlnFn("  info: " + u.Info)
	}
}
