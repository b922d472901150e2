// Package tcp serves the line protocol: it accepts connections, gives each
// one its own session, and dispatches commands to the services.
package tcp

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/dmitrijs2005/apptbook/internal/logging"
	"github.com/dmitrijs2005/apptbook/internal/protocol"
	"github.com/dmitrijs2005/apptbook/internal/server/services"
	"github.com/dmitrijs2005/apptbook/internal/server/session"
)

// Options tune the acceptor. Zero values pick the defaults below.
type Options struct {
	MaxConnections  int
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

const (
	defaultMaxConnections  = 256
	defaultIdleTimeout     = 5 * time.Minute
	defaultShutdownTimeout = 10 * time.Second
	acceptRetryDelay       = 50 * time.Millisecond

	// maxLineBytes caps one command line, terminator included.
	maxLineBytes = 64 * 1024
)

// Server is the connection acceptor.
type Server struct {
	address      string
	logger       logging.Logger
	users        *services.UserService
	appointments *services.AppointmentService
	opts         Options

	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

func NewServer(address string, l logging.Logger, us *services.UserService, as *services.AppointmentService, opts Options) (*Server, error) {
	if opts.MaxConnections <= 0 {
		opts.MaxConnections = defaultMaxConnections
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = defaultIdleTimeout
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	return &Server{
		address:      address,
		logger:       l.With("module", "tcp_server"),
		users:        us,
		appointments: as,
		opts:         opts,
		conns:        make(map[net.Conn]struct{}),
	}, nil
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on listen until ctx is done. It then stops
// accepting, gives open connections ShutdownTimeout to finish and closes
// whatever is left.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	sem := semaphore.NewWeighted(int64(s.opts.MaxConnections))

	var wg sync.WaitGroup

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping TCP server...")
		listen.Close()
	}()

	s.logger.Info(ctx, "Starting TCP server", "address", listen.Addr().String())

	for {
		// blocks while MaxConnections are being served
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}

		conn, err := listen.Accept()
		if err != nil {
			sem.Release(1)
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			s.logger.Warn(ctx, "accept error", "error", err)
			time.Sleep(acceptRetryDelay)
			continue
		}

		s.track(conn, true)
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			defer s.track(conn, false)
			s.serveConn(ctx, conn)
		}()
	}

	s.drain(ctx, &wg)
	return nil
}

func (s *Server) track(conn net.Conn, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		s.conns[conn] = struct{}{}
	} else {
		delete(s.conns, conn)
	}
}

// drain waits for connection goroutines and force-closes the remaining
// connections once ShutdownTimeout has passed.
func (s *Server) drain(ctx context.Context, wg *sync.WaitGroup) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(s.opts.ShutdownTimeout):
	}

	s.mu.Lock()
	s.logger.Warn(ctx, "closing connections after shutdown timeout", "open", len(s.conns))
	for c := range s.conns {
		c.Close()
	}
	s.mu.Unlock()

	<-done
}

// serveConn runs the command loop of one connection until QUIT, EOF, an I/O
// error or the idle timeout. Commands keep running after ctx is cancelled so
// that open connections can drain.
func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	ctx = context.WithoutCancel(ctx)

	log := s.logger.With("conn_id", uuid.NewString(), "remote", conn.RemoteAddr().String())
	log.Info(ctx, "connection accepted")

	h := &handler{
		sess:         session.New(),
		out:          protocol.NewWriter(conn),
		log:          log,
		users:        s.users,
		appointments: s.appointments,
	}

	if err := h.out.Line(protocol.Welcome); err != nil {
		log.Warn(ctx, "connection closed", "reason", "write error", "error", err)
		return
	}

	reader := bufio.NewReader(conn)
	for {
		_ = conn.SetReadDeadline(time.Now().Add(s.opts.IdleTimeout))

		line, tooLong, err := readLine(reader, maxLineBytes)
		if err != nil {
			s.logClose(ctx, log, err)
			return
		}

		var quit bool
		if tooLong {
			log.Warn(ctx, "line too long", "limit", maxLineBytes)
			err = h.out.Error(protocol.KindBadPayload)
		} else {
			quit, err = h.handleLine(ctx, line)
		}
		if err != nil {
			log.Warn(ctx, "connection closed", "reason", "write error", "error", err)
			return
		}
		if quit {
			log.Info(ctx, "connection closed", "reason", "quit")
			return
		}
	}
}

// readLine reads one line without its terminator. A line longer than limit
// is consumed up to its newline and reported as tooLong with an empty text.
// A final line without a newline is returned before io.EOF.
func readLine(r *bufio.Reader, limit int) (line string, tooLong bool, err error) {
	var buf []byte
	for {
		chunk, rerr := r.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(chunk) > limit {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}

		switch {
		case rerr == nil:
		case errors.Is(rerr, bufio.ErrBufferFull):
			continue
		case errors.Is(rerr, io.EOF) && (tooLong || len(buf) > 0):
		default:
			return "", false, rerr
		}
		return strings.TrimRight(string(buf), "\r\n"), tooLong, nil
	}
}

func (s *Server) logClose(ctx context.Context, log logging.Logger, err error) {
	var ne net.Error
	switch {
	case errors.Is(err, io.EOF):
		log.Info(ctx, "connection closed", "reason", "eof")
	case errors.As(err, &ne) && ne.Timeout():
		log.Info(ctx, "connection closed", "reason", "idle timeout")
	case errors.Is(err, net.ErrClosed):
		log.Info(ctx, "connection closed", "reason", "shutdown")
	default:
		log.Warn(ctx, "connection closed", "reason", "read error", "error", err)
	}
}
