package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/dmitrijs2005/apptbook/internal/protocol"
)

// DefaultTimeout bounds one request/response cycle when ctx has no deadline.
const DefaultTimeout = 10 * time.Second

// Conn is a line-protocol connection.
type Conn struct {
	mu      sync.Mutex
	c       net.Conn
	r       *protocol.Reader
	timeout time.Duration
}

var _ Client = (*Conn)(nil)

// Dial connects to addr and checks the welcome banner.
func Dial(ctx context.Context, addr string) (*Conn, error) {
	var d net.Dialer
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	conn := &Conn{c: c, r: protocol.NewReader(c), timeout: DefaultTimeout}

	_ = c.SetReadDeadline(conn.deadline(ctx))
	line, err := conn.r.Line()
	_ = c.SetReadDeadline(time.Time{})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if line != protocol.Welcome {
		c.Close()
		return nil, fmt.Errorf("%w: %q", ErrBadWelcome, line)
	}
	return conn, nil
}

func (c *Conn) deadline(ctx context.Context) time.Time {
	d := time.Now().Add(c.timeout)
	if cd, ok := ctx.Deadline(); ok && cd.Before(d) {
		return cd
	}
	return d
}

// roundTrip writes one command line and, if read is set, reads its reply,
// all under the connection lock.
func (c *Conn) roundTrip(ctx context.Context, cmd protocol.Command, payload string, read func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	_ = c.c.SetDeadline(c.deadline(ctx))
	defer c.c.SetDeadline(time.Time{})

	line := string(cmd)
	if payload != "" {
		line += " " + payload
	}
	if _, err := io.WriteString(c.c, line+"\n"); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if read == nil {
		return nil
	}
	return wrapRead(read())
}

// wrapRead passes protocol-level errors through and marks transport errors
// as ErrUnavailable.
func wrapRead(err error) error {
	var se *ServerError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &se), errors.Is(err, protocol.ErrMalformedResponse):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

// Do sends a command and returns the body of its single-line OK reply.
func (c *Conn) Do(ctx context.Context, cmd protocol.Command, payload string) (string, error) {
	var body string
	err := c.roundTrip(ctx, cmd, payload, func() (err error) {
		body, err = c.r.Reply()
		return err
	})
	return body, err
}

// List sends a command and returns the items of its framed list reply.
func (c *Conn) List(ctx context.Context, cmd protocol.Command, payload, tag string) ([]string, error) {
	var items []string
	err := c.roundTrip(ctx, cmd, payload, func() (err error) {
		items, err = c.r.List(tag)
		return err
	})
	return items, err
}

// Block sends a command whose reply is "OK <body>" followed by END.
func (c *Conn) Block(ctx context.Context, cmd protocol.Command, payload string) (string, error) {
	var body string
	err := c.roundTrip(ctx, cmd, payload, func() (err error) {
		body, err = c.r.Block()
		return err
	})
	return body, err
}

// Ping sends a heartbeat. The server does not answer it.
func (c *Conn) Ping(ctx context.Context) error {
	return c.roundTrip(ctx, protocol.CmdPing, "", nil)
}

// Close sends QUIT, waits briefly for the farewell and closes the socket.
func (c *Conn) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, _ = c.Do(ctx, protocol.CmdQuit, "")
	return c.c.Close()
}
