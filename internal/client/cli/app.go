package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/apptbook/internal/client/client"
	"github.com/dmitrijs2005/apptbook/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// heartbeatTimeout bounds a single PING.
const heartbeatTimeout = 3 * time.Second

type App struct {
	config *config.Config
	client client.Client
	reader *bufio.Reader
	out    io.Writer

	me *client.Identity

	mu   sync.Mutex
	mode Mode
}

// NewApp connects to the configured server.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	conn, err := client.Dial(ctx, c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}
	return &App{
		config: c,
		client: conn,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		mode:   ModeOnline,
	}, nil
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

// Run starts the heartbeat watcher and the REPL and blocks until the user
// leaves or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.config.HeartbeatInterval > 0 {
		go a.StartHeartbeatWatcher(ctx, a.config.HeartbeatInterval)
	}

	log.Println("Welcome to the appointment booking CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.me != nil
}

func (a *App) isAdmin() bool {
	return a.me != nil && a.me.Role == "ADMIN"
}

func (a *App) getStatus() string {
	s := ""
	if a.me != nil {
		s = a.me.UserName + " "
	}
	s += string(a.Mode())
	return fmt.Sprintf("(%s)", s)
}

// StartHeartbeatWatcher pings the server every interval and tracks whether
// it is reachable.
func (a *App) StartHeartbeatWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, heartbeatTimeout)
			err := a.client.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

// report prints err for the user. Transport failures switch the app offline.
func (a *App) report(err error) error {
	var se *client.ServerError
	switch {
	case errors.As(err, &se):
		fmt.Fprintf(a.out, "Failed: %s\n", se.Kind)
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
		fmt.Fprintln(a.out, "Server unavailable")
	default:
		fmt.Fprintf(a.out, "error: %v\n", err)
	}
	return err
}
