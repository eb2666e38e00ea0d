// Package server accepts connections and runs one shell session per
// connection until the context is cancelled.
package server

import (
	"context"
	"io"
	"net"
	"sync"
	"time"

	"shelld/config"
	sherr "shelld/internal/errors"
	"shelld/internal/metrics"
	"shelld/internal/retry"
	"shelld/internal/transport"
	"shelld/shell"
	"shelld/util"
)

const refusalBanner = "too many connections\n"

// Server owns the listener, the shared session state (registry,
// working directory, metrics), and the per-connection goroutines.
type Server struct {
	cfg      *config.Config
	registry *shell.Registry
	workdir  *shell.Workdir
	logger   *util.Logger
	metrics  *metrics.Collector
}

// New assembles a server.  The registry must be fully populated before
// Run is called; it is shared read-only by every session.
func New(cfg *config.Config, registry *shell.Registry, logger *util.Logger, mc *metrics.Collector) *Server {
	return &Server{
		cfg:      cfg,
		registry: registry,
		workdir:  shell.NewWorkdir(),
		logger:   logger,
		metrics:  mc,
	}
}

// Run listens and serves until ctx is cancelled or the listener fails
// permanently.  In-flight sessions are allowed to finish reading their
// (now closed) connections before Run returns.
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.listen()
	if err != nil {
		return err
	}
	defer ln.Close()

	s.logger.Info("listening on %s (%s)", ln.Addr(), s.transportName())

	// Tear the listener down when the context expires.
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	sem := make(chan struct{}, s.cfg.MaxConns)
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := s.accept(ctx, ln)
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return sherr.WrapStream("accept", ln.Addr().String(), err)
			}
		}

		select {
		case sem <- struct{}{}:
		default:
			s.logger.Warn("refusing %s: %v", conn.RemoteAddr(), sherr.ErrTooManyClients)
			io.WriteString(conn, refusalBanner) //nolint:errcheck
			conn.Close()
			continue
		}

		wg.Add(1)
		go func(c net.Conn) {
			defer wg.Done()
			defer func() { <-sem }()
			s.serve(ctx, c)
		}(conn)
	}
}

// accept retries transient accept failures with exponential backoff;
// anything else is permanent and ends the serve loop.
func (s *Server) accept(ctx context.Context, ln transport.Listener) (net.Conn, error) {
	bo := &retry.Backoff{
		InitialDelay: 5 * time.Millisecond,
		MaxDelay:     time.Second,
		MaxAttempts:  8,
		Jitter:       true,
	}

	var conn net.Conn
	err := bo.Do(ctx, func(attempt int) error {
		c, err := ln.Accept()
		if err != nil {
			if sherr.IsTemporary(err) {
				s.logger.Warn("accept (attempt %d): %v", attempt, err)
				return err
			}
			return retry.Permanent(err)
		}
		conn = c
		return nil
	})
	return conn, err
}

// serve runs one shell session over conn.
func (s *Server) serve(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	logger := s.logger.WithPrefix(remote)

	s.metrics.SessionOpened()
	defer s.metrics.SessionClosed()

	if s.cfg.Timeout > 0 {
		conn.SetDeadline(time.Now().Add(s.cfg.Timeout)) //nolint:errcheck
	}

	// Unblock the session's pending read when the context expires.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	logger.Verbose("session started")

	sess := shell.NewSession(conn, s.registry, shell.Options{
		BufferSize:  s.cfg.BufferSize,
		HistorySize: s.cfg.HistorySize,
		MaxArgs:     s.cfg.MaxArgs,
		Workdir:     s.workdir,
		Logger:      logger,
		Metrics:     s.metrics,
	})

	if err := sess.Run(); err != nil {
		s.metrics.RecordError(err.Error())
		logger.Error("session ended: %v", err)
		return
	}
	logger.Verbose("session ended")
}

func (s *Server) listen() (transport.Listener, error) {
	addr := util.FormatAddr(s.cfg.BindAddress, s.cfg.Port)
	if s.cfg.SSH {
		return transport.ListenSSH(addr, &transport.SSHConfig{
			HostKeyPath: s.cfg.HostKeyPath,
			Password:    s.cfg.SSHPassword,
		}, s.logger)
	}
	return transport.ListenTCP(addr)
}

func (s *Server) transportName() string {
	if s.cfg.SSH {
		return "ssh"
	}
	return "tcp"
}
