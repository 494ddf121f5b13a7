// Package http hosts the optional debug server: pprof, metrics and a heartbeat
package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"sync"
	"time"

	perr "pathstats/internal/platform/errors"
	"pathstats/internal/platform/logger"
	"pathstats/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
)

// Server is a thin wrapper over chi + stdlib http.Server
type Server struct {
	addr string
	srv  *stdhttp.Server

	mu sync.Mutex
	ln net.Listener
}

// NewServer creates a server for addr with the default middleware stack.
// opts receive the mux so callers can mount routes
func NewServer(addr string, opts ...func(chi.Router)) *Server {
	m := chi.NewRouter()
	m.Use(middleware.Defaults()...)
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr: addr,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Listen binds the address without serving; Addr reports the bound address afterwards
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "debug server: listen %s", s.addr)
	}
	s.ln = ln
	return nil
}

// Addr returns the bound address once listening, else the configured one
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.addr
}

// Run serves until Shutdown and blocks
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()

	logger.C(ctx).Info().Str("addr", ln.Addr().String()).Msg("debug server listening")
	err := s.srv.Serve(ln)
	if errors.Is(err, stdhttp.ErrServerClosed) {
		return nil
	}
	return perr.WrapIf(err, perr.ErrorCodeIO, "debug server")
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
