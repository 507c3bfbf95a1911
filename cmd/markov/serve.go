package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	httpAdapter "github.com/aretw0/markov/pkg/adapters/http"
	"github.com/aretw0/markov/pkg/observability"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Exposes the problem catalog, solving and stored solutions as a JSON API over HTTP, with Prometheus metrics on /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := a.cfg.Server.Addr
			if cmd.Flags().Changed("addr") {
				addr, _ = cmd.Flags().GetString("addr")
			}

			store, err := a.store()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			metrics := observability.NewMetrics(reg)

			handler := httpAdapter.NewHandler(a.service(store, metrics),
				httpAdapter.WithLogger(a.logger),
				httpAdapter.WithMetrics(reg),
			)
			srv := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Channel to listen for errors coming from the listener.
			serverErrors := make(chan error, 1)
			go func() {
				a.logger.Info("starting markov server", "addr", srv.Addr, "store", a.cfg.Store.Driver)
				fmt.Fprintf(cmd.OutOrStdout(), "Starting markov server on %s\n", srv.Addr)
				serverErrors <- srv.ListenAndServe()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// Blocking main and waiting for shutdown.
			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server error: %w", err)

			case <-ctx.Done():
				fmt.Fprintln(cmd.OutOrStdout(), "\nStart shutdown...")

				// Give outstanding requests a deadline for completion.
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := srv.Shutdown(shutdownCtx); err != nil {
					_ = srv.Close()
					return fmt.Errorf("graceful shutdown did not complete: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "markov server stopped gracefully")
				return nil
			}
		},
	}
	cmd.Flags().String("addr", "", "Address to listen on (default: server.addr from config)")
	return cmd
}
