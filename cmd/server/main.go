package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/janisto/demo-service/internal/config"
	"github.com/janisto/demo-service/internal/http/routes"
	applog "github.com/janisto/demo-service/internal/platform/logging"
	appmiddleware "github.com/janisto/demo-service/internal/platform/middleware"
	"github.com/janisto/demo-service/internal/platform/respond"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const docsPath = "/api-docs"

func main() {
	ctx := context.Background()
	defer func() {
		if err := applog.Sync(); err != nil && !errors.Is(err, syscall.EINVAL) {
			applog.LogError(ctx, "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(ctx, "logger init error", err)
	}

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		applog.LogError(ctx, "server failed", err)
		_ = applog.Sync()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		port       int
		configPath string
	)
	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Serve the demo routes: /, /ping, /hello and /about.json",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
				if err := cfg.Validate(); err != nil {
					return fmt.Errorf("invalid --port: %w", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", cfg.Addr())
			if err != nil {
				return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
			}
			return serve(ctx, ln, cfg, newRouter())
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "port to listen on (overrides PORT)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file (defaults to $APP_CONFIG)")
	return cmd
}

// newRouter assembles the middleware stack, the fallback handlers and the
// routing table.
func newRouter() http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(docsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For; only deploy behind a proxy that sets it.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	cfg := huma.DefaultConfig("Demo Service", Version)
	cfg.DocsPath = docsPath
	cfg.Info.Description = "Four GET routes: a route listing, a ping, a greeting and a project descriptor."
	api := humachi.New(router, cfg)
	routes.Register(api)
	return router
}

// serve runs the HTTP server on ln until ctx is cancelled, then shuts it down
// within cfg.ShutdownTimeout.
func serve(ctx context.Context, ln net.Listener, cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout.Duration,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout.Duration,
		WriteTimeout:      cfg.WriteTimeout.Duration,
		IdleTimeout:       cfg.IdleTimeout.Duration,
		MaxHeaderBytes:    64 << 10,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		applog.LogInfo(gctx, "server listening", zap.String("addr", ln.Addr().String()), zap.String("version", Version))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		applog.LogInfo(context.Background(), "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Duration)
		defer cancel()
		start := time.Now()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		applog.LogInfo(context.Background(), "server exited", zap.Duration("drain", time.Since(start)))
		return nil
	})
	return g.Wait()
}
