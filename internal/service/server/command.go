package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	api "github.com/mkropachev/sign-station/internal/api/http"
	"github.com/mkropachev/sign-station/internal/config"
	"github.com/mkropachev/sign-station/internal/logger"
	"github.com/mkropachev/sign-station/internal/repository/store"
	"github.com/mkropachev/sign-station/internal/service/signer"
)

// Options controls the sign-station process.
type Options struct {
	// ListenAddress provides an optional listen address override for the HTTP server.
	ListenAddress string
}

const (
	// readHeaderTimeout protects the listener from slowloris-style clients.
	// Bodies stay unbounded: uploads are large and stream for a while.
	readHeaderTimeout = 10 * time.Second

	// shutdownTimeout is how long in-flight requests may drain on shutdown.
	shutdownTimeout = 30 * time.Second
)

// Run loads configuration, wires the pipeline behind the HTTP API, starts
// the retention sweeper and blocks until the context is canceled or the
// server stops.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "sign-station")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	} else {
		logger.Warnf(ctx, "Unknown log level %q, keeping %s", cfg.LogLevel, logger.Level())
	}

	artifactStore := store.New(cfg.WorkPath, cfg.PublicPath)
	zsign := signer.NewZsign(cfg.SignerPath, cfg.ProfilePath, cfg.KeyPath, cfg.SignTimeout)
	service := NewService(cfg.Allowlist, artifactStore, zsign)

	listenAddress := opts.ListenAddress
	if listenAddress == "" {
		listenAddress = ":" + cfg.Port
	}

	httpServer := &http.Server{
		Addr:              listenAddress,
		Handler:           api.NewHandler(service, cfg.PublicPath),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go store.NewSweeper(artifactStore, cfg.SweepInterval).Run(ctx)

	// Done channel is closed after Shutdown finishes to ensure we block
	// until in-flight requests drained before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Errorf(ctx, "HTTP server shutdown: %v", shutdownErr)
		}

		close(done)
	}()

	logger.InfoKV(ctx, "Sign station listening",
		"listen_address", listenAddress,
		"signer", cfg.SignerPath,
		"allowed_devices", cfg.Allowlist.Len(),
		"sweep_interval", cfg.SweepInterval)

	if err = httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve HTTP: %w", err)
	}

	<-done
	logger.Info(ctx, "HTTP server stopped")

	return nil
}
