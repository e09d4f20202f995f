// Package server serves the demo over SSH, one dialog store per session,
// and exposes the stores' metrics over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/charmbracelet/ssh"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/GhostWriters/DialogStack/internal/app"
	"github.com/GhostWriters/DialogStack/internal/config"
	"github.com/GhostWriters/DialogStack/pkg/dialog"
	"github.com/GhostWriters/DialogStack/pkg/dialogmetrics"
)

// Server runs one demo program per SSH session.
type Server struct {
	cfg config.AppConfig
	reg prometheus.Registerer
	log *slog.Logger
	srv *ssh.Server
}

// New builds the SSH server. reg receives a collector for every session's
// store while the session lasts; it may be nil.
func New(cfg config.AppConfig, reg prometheus.Registerer, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{cfg: cfg, reg: reg, log: log}

	srv, err := wish.NewServer(
		wish.WithAddress(cfg.Server.Address),
		wish.WithHostKeyPath(config.ExpandVariables(cfg.Server.HostKeyPath)),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return nil, err
	}
	s.srv = srv
	return s, nil
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info("Starting SSH server", "address", s.cfg.Server.Address)
		err := s.srv.ListenAndServe()
		if errors.Is(err, ssh.ErrServerClosed) {
			err = nil
		}
		errc <- err
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Stopping SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return <-errc
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Server.Address
}

func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	id := uuid.NewString()
	log := s.log.With("session", id, "user", sess.User())

	store, release := s.newSessionStore(id)
	go func() {
		<-sess.Context().Done()
		release()
		log.Debug("Session closed")
	}()

	log.Debug("Session opened", "remote", remoteHost(sess.RemoteAddr()))
	m := app.New(sess.Context(), s.cfg, store, log, app.WithZonePrefix("dialog:"+id+":"))
	return m, nil
}

// newSessionStore creates the store of one session and registers its
// collector. release unregisters it.
func (s *Server) newSessionStore(id string) (*dialog.Store, func()) {
	store := dialog.NewStore(dialog.WithBaseZIndex(s.cfg.Stack.BaseZIndex))
	if s.reg == nil {
		return store, func() {}
	}
	col := dialogmetrics.NewCollector(store, prometheus.Labels{"session": id})
	if err := s.reg.Register(col); err != nil {
		s.log.Warn("Registering session metrics", "session", id, "error", err)
		return store, func() {}
	}
	return store, func() { s.reg.Unregister(col) }
}

func remoteHost(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
