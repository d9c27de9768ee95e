package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"noura/internal/backend"
	"noura/internal/cli"
	apphttp "noura/internal/http"
	"noura/internal/identity"
	"noura/internal/ledger"
	applog "noura/internal/log"
	"noura/internal/session"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	// Build the storage backend
	factory := backend.NewFactory(logger.WithComponent(applog.ComponentBackend))
	result, err := factory.CreateBackend(backend.Config{
		Type:         backend.BackendType(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize storage backend",
			applog.FieldBackend, cfg.DataBackend,
			applog.FieldError, err)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Storage cleanup failed", applog.FieldError, err)
			}
		}()
	}

	// Wire the application together
	identities := identity.NewStore(result.Store)
	repo := ledger.NewRepository(result.Store)
	sessions := session.NewManager(identities, repo, result.Store)

	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	srv, err := apphttp.NewServer(addr, sessions, logger)
	if err != nil {
		logger.Error("Failed to initialize server", applog.FieldError, err)
		os.Exit(1)
	}

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Restore the previous session, if any, before serving
	if sess, err := sessions.Restore(ctx); err == nil {
		srv.AttachSession(sess)
	} else if !errors.Is(err, session.ErrNoSession) {
		logger.Warn("Session restore failed, starting signed out", applog.FieldError, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting noura server",
			applog.FieldOperation, applog.OpStartup,
			"addr", addr,
			applog.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received", applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err, "addr", addr)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
