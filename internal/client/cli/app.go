package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/client/client"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config   *config.Config
	api      client.Client
	tokens   *tokenStore
	reader   *bufio.Reader
	out      io.Writer
	userName string
	loggedIn bool

	mu   sync.Mutex
	mode Mode
}

func NewApp(c *config.Config) (*App, error) {
	api := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	return newApp(c, api, os.Stdin, os.Stdout)
}

func newApp(c *config.Config, api client.Client, in io.Reader, out io.Writer) (*App, error) {
	a := &App{
		config: c,
		api:    api,
		tokens: &tokenStore{path: c.TokenFile},
		reader: bufio.NewReader(in),
		out:    out,
	}

	token, err := a.tokens.Load()
	if err != nil {
		return nil, err
	}
	if token != "" {
		api.SetToken(token)
		a.loggedIn = true
	}
	return a, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run starts the connectivity watcher and the REPL. It returns when the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Pharmacy inventory CLI (type 'help' for commands)")
	a.checkOnline(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
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

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
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
