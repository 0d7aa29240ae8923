// Package transport runs the TCP listener serving framed client commands.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/clock"
	"github.com/goodnatureofminers/nodeapi7000-backend/internal/service"
	"github.com/goodnatureofminers/nodeapi7000-backend/internal/session"
)

// Server accepts client connections and serves commands on each until the
// client disconnects. One goroutine per connection; handlers run to
// completion on that goroutine.
type Server struct {
	dispatcher  *service.Dispatcher
	ledger      service.Ledger
	peers       service.Peers
	logger      *zap.Logger
	timeout     time.Duration
	commandRate int

	ln net.Listener
	wg sync.WaitGroup
}

// NewServer builds the command server. commandRate caps commands per second
// per connection; zero or negative disables the limit.
func NewServer(
	dispatcher *service.Dispatcher,
	ledger service.Ledger,
	peers service.Peers,
	logger *zap.Logger,
	timeout time.Duration,
	commandRate int,
) *Server {
	return &Server{
		dispatcher:  dispatcher,
		ledger:      ledger,
		peers:       peers,
		logger:      logger,
		timeout:     timeout,
		commandRate: commandRate,
	}
}

// Listen binds the TCP listener.
func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.ln = ln
	return nil
}

// Addr returns the bound listener address. Valid after Listen.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Serve accepts connections until the context is canceled, then waits for
// in-flight connections to finish. Transient accept failures back off
// instead of spinning.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.ln.Close()
	}()

	backoff := clock.NewBackoff(5*time.Millisecond, time.Second)
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.wg.Wait()
				return nil
			}
			s.logger.Warn("accept failed", zap.Error(err))
			if err := clock.SleepWithContext(ctx, backoff.Next()); err != nil {
				s.wg.Wait()
				return nil
			}
			continue
		}
		backoff.Reset()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(ctx, conn)
		}()
	}
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	defer func() { _ = conn.Close() }()

	sess := session.New(conn, s.timeout)
	limiter := ratelimit.NewUnlimited()
	if s.commandRate > 0 {
		limiter = ratelimit.New(s.commandRate)
	}

	s.logger.Info("client connected", zap.String("remote", sess.RemoteAddr()))
	defer s.logger.Info("client disconnected", zap.String("remote", sess.RemoteAddr()))

	for {
		if ctx.Err() != nil {
			return
		}

		var command string
		if err := sess.Receive(&command); err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				s.logger.Debug("session read failed",
					zap.String("remote", sess.RemoteAddr()),
					zap.Error(err))
			}
			return
		}

		limiter.Take()
		// A failed command keeps the session open; the client decides
		// whether to hang up.
		s.dispatcher.Dispatch(ctx, command, sess, s.ledger, s.peers)
	}
}
