package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/postbox/internal/client/client"
	"github.com/dmitrijs2005/postbox/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	api    client.Client
	reader *bufio.Reader
	out    io.Writer

	user *client.User
	// lastQueryTime is the query_time of the last inbox read; zero when
	// there is nothing to prune against.
	lastQueryTime int64

	// mode is written by the status watcher and read by the REPL.
	mu   sync.RWMutex
	mode Mode
}

func NewApp(c *config.Config) (*App, error) {
	api, err := client.NewPostboxClient(c.ServerEndpointAddr, c.HealthEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return newApp(c, api, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, api client.Client, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		api:    api,
		reader: bufio.NewReader(in),
		out:    out,
		mode:   ModeOffline,
	}
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		log.Printf("Switched to %s mode\n", mode)
	}
}

// Mode returns the current connectivity mode.
func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) Run(ctx context.Context) {
	defer a.api.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) status() string {
	if a.user == nil {
		return string(a.Mode())
	}
	return a.user.Username + "@" + string(a.Mode())
}

// Root runs the REPL on the app's input until the user exits.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.checkOnline(ctx)
	if a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	printlnFn("Welcome to postbox. Type help for the list of commands.")
	runREPL(ctx, a, a.status, a.reader)
}
