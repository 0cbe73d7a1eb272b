package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/harun/notiz/pkg/watch"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print one JSON line per change below the root until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(a *app, root string) error {
				addr := metricsAddr
				if addr == "" && a.cfg.Metrics.Enabled {
					addr = a.cfg.Metrics.Addr
				}
				return runWatch(cmd, a, root, addr)
			})
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

func runWatch(cmd *cobra.Command, a *app, root, metricsAddr string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	logger := a.log.Component("cli")

	// Handlers run concurrently; keep lines whole
	var mu sync.Mutex
	encoder := json.NewEncoder(cmd.OutOrStdout())
	unsubscribe := a.lib.Subscribe(func(event watch.ChangeEvent) {
		mu.Lock()
		defer mu.Unlock()
		if err := encoder.Encode(event); err != nil {
			logger.Warn().Err(err).Msg("Failed to print change event")
		}
	})
	defer unsubscribe()

	if err := a.lib.StartWatch(root); err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	var server *http.Server
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", a.metrics.Handler())

		server = &http.Server{
			Addr:        metricsAddr,
			Handler:     mux,
			BaseContext: func(_ net.Listener) context.Context { return ctx },
		}

		go func() {
			logger.Info().Str("addr", metricsAddr).Msg("Serving metrics")
			serverErr <- server.ListenAndServe()
		}()
	}

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server error: %w", err)
		}
	case <-ctx.Done():
	}

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop metrics server: %w", err)
		}
	}

	return a.lib.StopWatch()
}
