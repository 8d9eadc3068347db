package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/postbox/internal/client/client"
)

var errNoInboxRead = errors.New("nothing to prune: run inbox first")

// Send sends a message. "send bob hi there" sends inline text; "send bob"
// prompts for a multiline body.
func (a *App) Send(ctx context.Context, args []string) error {
	recipient, err := a.argOrPrompt(args, "Recipient")
	if err != nil {
		return err
	}

	var contents string
	if len(args) > 1 {
		contents = strings.Join(args[1:], " ")
	} else {
		contents, err = getMultiline(a.reader, "Message", a.out)
		if err != nil {
			return err
		}
	}

	m, err := a.api.Send(ctx, recipient, contents)
	if errors.Is(err, client.ErrNotFound) {
		printlnFn("No such user:", recipient)
		return nil
	}
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Sent #%d to %s", m.ID, m.ToUser))
	return nil
}

func (a *App) Inbox(ctx context.Context) error {
	in, err := a.api.Inbox(ctx)
	if err != nil {
		return err
	}
	a.lastQueryTime = in.QueryTime

	if len(in.Messages) == 0 {
		printlnFn("Inbox is empty")
		return nil
	}
	for _, m := range in.Messages {
		printlnFn(fmt.Sprintf("#%d %s from %s:", m.ID, formatTime(m.SentAt), m.FromUser))
		printlnFn("  " + strings.ReplaceAll(m.Contents, "\n", "\n  "))
	}
	return nil
}

// Prune deletes the messages shown by the last inbox read. Messages that
// arrived after that read are kept.
func (a *App) Prune(ctx context.Context) error {
	if a.lastQueryTime == 0 {
		return errNoInboxRead
	}

	n, err := a.api.DeleteUpTo(ctx, a.lastQueryTime)
	if err != nil {
		return err
	}
	a.lastQueryTime = 0
	printlnFn(fmt.Sprintf("Deleted %d message(s)", n))
	return nil
}

func formatTime(unix int64) string {
	return time.Unix(unix, 0).Local().Format(time.DateTime)
}
