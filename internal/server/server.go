// Package server provides the local HTTP API used by the key editor.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/HopIT-Hub/mmaccel/internal/catalog"
	"github.com/HopIT-Hub/mmaccel/internal/config"
	"github.com/HopIT-Hub/mmaccel/internal/session"
)

// Session is the part of the session controller the API reads.
type Session interface {
	Status() session.Status
	Catalog() *catalog.Catalog
	KeyMapPath() string
}

// HotkeyRegistrar registers the suspend hotkey.
type HotkeyRegistrar interface {
	Register(hk config.HotkeyConfig) error
}

// Options configures a Server.
type Options struct {
	Session Session
	Config  *config.Config
	Hotkey  HotkeyRegistrar
	Version string
	Logger  zerolog.Logger

	// OnSuspend is called when a client turns remapping off or on.
	OnSuspend func(suspended bool)
}

// Server serves the API on localhost.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	opts       Options
	log        zerolog.Logger
}

// New creates an API server.
func New(opts Options) *Server {
	return &Server{
		opts: opts,
		log:  opts.Logger,
	}
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/catalog", s.handleCatalog)
	mux.HandleFunc("/bindings", s.handleBindings)
	mux.HandleFunc("/schema", s.handleSchema)
	mux.HandleFunc("/suspend", s.handleSuspend)
	mux.HandleFunc("/hotkey", s.handleHotkey)
	return mux
}

// Start begins serving on a random localhost port.
// Returns the base URL of the API.
func (s *Server) Start() (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("listen: %w", err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("serve")
		}
	}()

	url := s.URL()
	s.log.Info().Str("url", url).Msg("api listening")
	return url, nil
}

// Stop shuts down the HTTP server.
func (s *Server) Stop() {
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.log.Warn().Err(err).Msg("shutdown")
		}
	}
}

// URL returns the server's URL, or empty string if not started.
func (s *Server) URL() string {
	if s.listener == nil {
		return ""
	}
	return fmt.Sprintf("http://%s", s.listener.Addr().String())
}
