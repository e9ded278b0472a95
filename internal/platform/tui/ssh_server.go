package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.snake/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		IdleTimeout: 30 * time.Minute,
	}
}

// shutdownGrace bounds how long open sessions get to finish on shutdown.
const shutdownGrace = 10 * time.Second

// SSHServer serves one independent snake session per SSH connection.
type SSHServer struct {
	config  SSHServerConfig
	game    config.SnakeConfig
	journal Journal
	server  *ssh.Server
	logger  *log.Logger
	active  atomic.Int64
}

// NewSSHServer creates a new SSH server. journal may be nil.
func NewSSHServer(cfg SSHServerConfig, game config.SnakeConfig, journal Journal, logger *log.Logger) (*SSHServer, error) {
	srv := &SSHServer{
		config:  cfg,
		game:    game,
		journal: journal,
		logger:  logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".snake", "host_key")
	}
	// wish generates the key on first start; its directory must exist.
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.trackingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler builds a fresh snake model for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("Rejecting session without PTY", "user", sess.User())
		return nil, nil
	}

	model := NewModel(Options{
		Config: s.game,
		Runtime: core.RuntimeConfig{
			ScreenW: pty.Window.Width,
			ScreenH: pty.Window.Height,
		},
		Journal: s.journal,
		Logger:  sessionLogger(s.logger, sess),
	})
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// sessionLogger tags every line of one connection with a session id.
func sessionLogger(l *log.Logger, sess ssh.Session) *log.Logger {
	if id, ok := sess.Context().Value(sessionIDKey{}).(string); ok {
		return l.With("session", id, "user", sess.User())
	}
	return l.With("user", sess.User())
}

type sessionIDKey struct{}

// trackingMiddleware assigns the session id and keeps the live count.
func (s *SSHServer) trackingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		id := uuid.NewString()
		sess.Context().SetValue(sessionIDKey{}, id)

		n := s.active.Add(1)
		start := time.Now()
		s.logger.Info("Session started",
			"session", id,
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"active", n,
		)
		defer func() {
			s.logger.Info("Session ended",
				"session", id,
				"user", sess.User(),
				"duration", time.Since(start).Round(time.Second),
				"active", s.active.Add(-1),
			)
		}()
		next(sess)
	}
}

// Sessions returns how many SSH sessions are currently connected.
func (s *SSHServer) Sessions() int64 {
	return s.active.Load()
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("Starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down", "active", s.Sessions())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown stops accepting connections and waits for open sessions until
// ctx expires.
func (s *SSHServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
