package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	httpAdapter "github.com/iho/payments-engine/internal/adapter/http"
	"github.com/iho/payments-engine/internal/adapter/http/handler"
	"github.com/iho/payments-engine/internal/infrastructure/logger"
	"github.com/iho/payments-engine/internal/infrastructure/metrics"
	"github.com/iho/payments-engine/internal/usecase"
)

func newServeCmd(stderr io.Writer, opts *options) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve [flags] <transactions.csv>",
		Short: "Replay a transaction log and serve the resulting ledger over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), stderr, args[0], port, opts, nil)
		},
	}

	cmd.Flags().StringVar(&port, "port", opts.cfg.HTTPPort, "HTTP port to listen on")

	return cmd
}

// runServe loads the ledger and serves it read-only until ctx is cancelled.
// ready, when non-nil, receives the bound address once the listener is up.
func runServe(ctx context.Context, stderr io.Writer, path, port string, opts *options, ready chan<- string) error {
	log := logger.New(logger.Config{Level: opts.logLevel, Format: opts.logFormat, Output: stderr})
	m := metrics.New()

	ledger, err := loadLedger(ctx, path, opts, log, m)
	if err != nil {
		return err
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:        handler.NewAccountHandler(ledger),
		ReconciliationHandler: handler.NewReconciliationHandler(usecase.NewReconciliationUseCase(ledger)),
		HealthHandler:         handler.NewHealthHandler(),
		Metrics:               m,
		Logger:                log,
	})

	server := &http.Server{
		Handler:      router,
		ReadTimeout:  opts.cfg.HTTPReadTimeout,
		WriteTimeout: opts.cfg.HTTPWriteTimeout,
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%s", port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("starting server")
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	if ready != nil {
		ready <- ln.Addr().String()
	}

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	timeout := opts.cfg.HTTPShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")

	return nil
}
