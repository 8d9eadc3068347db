package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Me(ctx context.Context) error
	Info(ctx context.Context) error
	Friend(ctx context.Context, args []string) error
	Send(ctx context.Context, args []string) error
	Inbox(ctx context.Context) error
	Prune(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the postbox CLI.
//
// The first token of each line is the command; the rest are passed to
// commands that accept arguments:
//
//	Not logged in:
//	  - help           show available commands
//	  - register       create an account
//	  - login          authenticate
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - me             show own profile
//	  - info           replace own profile info
//	  - friend <user>  show another user's public profile
//	  - send <user> [text]
//	  - inbox          list the most recent messages
//	  - prune          delete messages up to the last inbox read
//	  - logout
//
// Command errors are printed and the loop continues. The loop exits on EOF
// or on "exit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("pb> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if !a.isLoggedIn() && requiresLogin(cmd) {
			printlnFn("Please login first")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: me, info, friend <user>, send <user> [text], inbox, prune, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			report(a.Register(ctx))

		case "login":
			report(a.Login(ctx))

		case "me":
			report(a.Me(ctx))

		case "info":
			report(a.Info(ctx))

		case "friend":
			report(a.Friend(ctx, args))

		case "send":
			report(a.Send(ctx, args))

		case "inbox":
			report(a.Inbox(ctx))

		case "prune":
			report(a.Prune(ctx))

		case "logout":
			report(a.Logout(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func requiresLogin(cmd string) bool {
	switch cmd {
	case "me", "info", "friend", "send", "inbox", "prune", "logout":
		return true
	}
	return false
}

func report(err error) {
	if err != nil {
		printlnFn("Error:", err)
	}
}
