package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// GameID selects the registered game every session plays.
	GameID string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the fallback tick rate for sessions.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		GameID:      "invaders",
		IdleTimeout: 30 * time.Minute,
		TickRate:    30,
	}
}

// SSHServer wraps a Wish SSH server. Every session runs its own game;
// sessions only share the high score store.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  storage.HighScoreStore
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. The store may be nil, in which
// case scores are not persisted. The server takes ownership of the store.
func NewSSHServer(cfg SSHServerConfig, store storage.HighScoreStore, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "invaders-ssh",
		})
	}
	if !registry.Exists(cfg.GameID) {
		return nil, fmt.Errorf("unknown game %q", cfg.GameID)
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	// Middleware runs last to first: logging wraps the terminal check,
	// which wraps the program.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.sessionMiddleware,
			logging.MiddlewareWithLogger(logger),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	game, err := registry.Create(s.config.GameID)
	if err != nil {
		s.logger.Error("cannot create game", "game", s.config.GameID, "err", err)
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewModel(game, cfg, Options{
		Store:    s.store,
		Logger:   s.logger.With("user", sess.User()),
		Renderer: bubbletea.MakeRenderer(sess),
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// sessionMiddleware logs session start and end.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		started := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(started).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "game", s.config.GameID)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		s.closeStore()
		return fmt.Errorf("ssh server: %w", err)
	}
}

// Shutdown gracefully stops the server and closes the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("cannot close score store", "err", err)
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
