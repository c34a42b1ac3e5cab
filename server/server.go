// Package server implements the Diameter connection accept loop and the
// per-connection request/answer state machine (spec.md §4.6, §5).
package server

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/dummyocs/diameter-gy/config"
	"github.com/dummyocs/diameter-gy/transport"
)

const defaultAcceptTimeout = 0 // ListenAndServe treats 0 as a one-second accept deadline

// Server listens for Diameter peers and spawns one connection goroutine
// per accepted TCP connection. Kept functional-options for the
// transport/listener-level concerns SPEC_FULL.md §10.3 scopes them to; the
// charging parameters live in the shared *config.Config instead.
type Server struct {
	cfg    *config.Config
	logger *log.Logger
	ServerOptions
}

type ServerOptionsFunc func(*ServerOptions)

type ServerOptions struct {
	listenAddr    string
	acceptTimeout time.Duration
}

func defaultServerOptions(cfg *config.Config) ServerOptions {
	return ServerOptions{
		listenAddr:    net.JoinHostPort(cfg.ListenAddr, strconv.Itoa(int(cfg.ListenPort))),
		acceptTimeout: defaultAcceptTimeout,
	}
}

// WithListenAddr overrides the address the server binds to, bypassing the
// host/port encoded in cfg.
func WithListenAddr(addr string) ServerOptionsFunc {
	return func(o *ServerOptions) {
		o.listenAddr = addr
	}
}

// WithAcceptTimeout bounds how long Accept blocks before retrying, letting
// the accept loop notice ctx cancellation promptly during shutdown.
func WithAcceptTimeout(timeout time.Duration) ServerOptionsFunc {
	return func(o *ServerOptions) {
		o.acceptTimeout = timeout
	}
}

// New builds a Server for cfg, logging through logger.
func New(cfg *config.Config, logger *log.Logger, opts ...ServerOptionsFunc) *Server {
	options := defaultServerOptions(cfg)
	for _, opt := range opts {
		opt(&options)
	}
	return &Server{cfg: cfg, logger: logger, ServerOptions: options}
}

// ListenAndServe binds the listen address and accepts connections until ctx
// is canceled, spawning one goroutine per connection under an errgroup so
// shutdown waits for in-flight connections to finish. Connections do not
// watch ctx; each ends only when its own serve loop terminates.
func (s *Server) ListenAndServe(ctx context.Context) error {
	acceptTimeout := s.acceptTimeout
	if acceptTimeout == 0 {
		acceptTimeout = time.Second
	}
	listener, err := transport.NewDiameterListener(s.listenAddr, acceptTimeout)
	if err != nil {
		return err
	}
	defer listener.Close()

	s.logger.Info("listening", "addr", listener.Addr().String())

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		<-ctx.Done()
		listener.Close()
		return nil
	})

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			if errors.Is(err, transport.ErrAcceptTimeout) {
				continue
			}
			s.logger.Warn("accept failed", "error", err)
			continue
		}

		group.Go(func() error {
			s.handleConnection(conn)
			return nil
		})
	}

	return group.Wait()
}

func (s *Server) handleConnection(conn *transport.DiameterConnection) {
	remoteAddr := conn.RemoteAddr().String()
	s.logger.Info("client connected", "remote_addr", remoteAddr)
	defer conn.Close()

	c := &connection{conn: conn, cfg: s.cfg}
	connErr := c.serve()
	logTermination(s.logger, remoteAddr, connErr)
}
