package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Phase-Platform/phase/internal/auth"
	"github.com/Phase-Platform/phase/internal/config"
	"github.com/Phase-Platform/phase/internal/db"
	"github.com/Phase-Platform/phase/internal/rpc"
)

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the RPC API",
		Long: `Connects to the store and serves every entity procedure at /rpc/<entity>.<op>,
with /healthz and /metrics alongside. Stops gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "create or update tables before serving")
	return cmd
}

func runServe(cmd *cobra.Command, migrate bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	state := &serveState{}
	app := newServeApp(cfg, &log, cmd.OutOrStdout(), migrate, state)
	if err := app.Err(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	startCtx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("serve: start: %w", err)
	}

	select {
	case sig := <-app.Done():
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case <-cmd.Context().Done():
	}

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		return fmt.Errorf("serve: stop: %w", err)
	}
	return state.Err()
}

// serveState records why the server stopped on its own.
type serveState struct {
	mu  sync.Mutex
	err error
}

func (s *serveState) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// Err returns the server failure, if any.
func (s *serveState) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// serveParams carries the settings that are not provided by constructors.
type serveParams struct {
	Out     io.Writer
	Migrate bool
}

func newServeApp(cfg *config.Config, log *zerolog.Logger, out io.Writer, migrate bool, state *serveState) *fx.App {
	return fx.New(
		fx.NopLogger,
		fx.Supply(cfg, log, state, serveParams{Out: out, Migrate: migrate}),
		fx.Provide(provideStore, provideVerifier),
		fx.Invoke(registerServer),
	)
}

// provideStore opens the store and ties its lifetime to the app.
func provideStore(lc fx.Lifecycle, cfg *config.Config, log *zerolog.Logger, p serveParams) (*gorm.DB, error) {
	gdb, err := db.Open(cfg.Database.URL, cfg.DBOptions())
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.Ping(ctx, gdb); err != nil {
				return err
			}
			if p.Migrate {
				if err := db.AutoMigrate(gdb.WithContext(ctx)); err != nil {
					return err
				}
				log.Info().Msg("tables migrated")
			}
			return nil
		},
		OnStop: func(context.Context) error {
			log.Info().Msg("closing store")
			return db.Close(gdb)
		},
	})
	return gdb, nil
}

// provideVerifier accepts session tokens, and signed tokens when a secret is
// configured.
func provideVerifier(cfg *config.Config, gdb *gorm.DB) auth.Verifier {
	chain := auth.Chain{}
	if cfg.AuthSecret != "" {
		chain = append(chain, auth.NewJWT(cfg.AuthSecret))
	}
	return append(chain, auth.NewSessions(gdb))
}

func registerServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg *config.Config, gdb *gorm.DB,
	verifier auth.Verifier, log *zerolog.Logger, state *serveState, p serveParams) error {
	srv, err := rpc.New(rpc.Options{
		DB:       gdb,
		Verifier: verifier,
		Timeout:  cfg.RequestTimeout(),
		Logger:   log,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", cfg.ListenAddr)
			if err != nil {
				cancel()
				return fmt.Errorf("listen %s: %w", cfg.ListenAddr, err)
			}
			go func() {
				defer close(done)
				if err := srv.Serve(ctx, ln, p.Out); err != nil {
					log.Error().Err(err).Msg("rpc server failed")
					state.fail(err)
					if err := shutdowner.Shutdown(); err != nil {
						log.Error().Err(err).Msg("shutdown")
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return errors.New("rpc server did not stop in time")
			}
		},
	})
	return nil
}
