// Package rpc serves the entity procedures over HTTP.
//
// Every entity exposes five procedures named "<entity>.<op>": getAll and
// getById are public queries, create, update and delete are mutations that
// need an authenticated actor. Procedures are served at /rpc/<procedure>.
package rpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Phase-Platform/phase/internal/auth"
	"github.com/Phase-Platform/phase/internal/crud"
)

const shutdownGrace = 5 * time.Second

// Options configures a Server.
type Options struct {
	DB *gorm.DB
	// Verifier resolves bearer tokens. Nil means every mutation is rejected.
	Verifier auth.Verifier
	// Timeout bounds each request. Zero means no deadline.
	Timeout time.Duration
	Logger  *zerolog.Logger
}

// Server routes procedure calls to the crud registry.
type Server struct {
	db       *gorm.DB
	reg      *crud.Registry
	verifier auth.Verifier
	timeout  time.Duration
	log      zerolog.Logger
	metrics  *metrics
	engine   *gin.Engine
}

// New builds a Server and its routes.
func New(opts Options) (*Server, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("rpc: db is required")
	}
	s := &Server{
		db:       opts.DB,
		reg:      crud.NewRegistry(opts.DB),
		verifier: opts.Verifier,
		timeout:  opts.Timeout,
		log:      zerolog.Nop(),
		metrics:  newMetrics(),
	}
	if opts.Logger != nil {
		s.log = *opts.Logger
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLog())
	s.registerRoutes(router)
	s.engine = router
	return s, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.engine }

// StartOpts holds configuration for Start.
type StartOpts struct {
	Options
	Addr string
	Out  io.Writer
}

// Start serves on opts.Addr. It blocks until ctx is cancelled, then shuts
// down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	s, err := New(opts.Options)
	if err != nil {
		return err
	}
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return fmt.Errorf("rpc: listen %s: %w", opts.Addr, err)
	}
	return s.Serve(ctx, ln, opts.Out)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener, out io.Writer) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn().Err(err).Msg("rpc: shutdown")
		}
	}()

	if out != nil {
		fmt.Fprintf(out, "RPC server listening on %s\n", ln.Addr())
	}
	s.log.Info().Str("addr", ln.Addr().String()).Msg("rpc server started")

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("rpc: %w", err)
	}
	<-done
	s.log.Info().Msg("rpc server stopped")
	return nil
}
