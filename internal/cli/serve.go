package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpAdapter "github.com/aretw0/germwalk/internal/adapters/http"
	"github.com/aretw0/germwalk/internal/adapters/memory"
	"github.com/aretw0/germwalk/internal/config"
	"github.com/aretw0/germwalk/pkg/graph"
	"github.com/aretw0/germwalk/pkg/persistence/middleware"
)

// ServeOptions configures the read-only HTTP API.
type ServeOptions struct {
	Addr   string
	Config config.Config
	Out    io.Writer
}

// Serve runs the HTTP API until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, opts ServeOptions) error {
	cfg := opts.Config
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	logger := NewLogger(cfg.Log, opts.Out)

	store, closeStore, err := OpenStore(cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()
	if store == nil {
		store = memory.New()
	}

	var g *graph.Graph
	if cfg.Graph != "" {
		g, err = graph.LoadFile(cfg.Graph)
		if err != nil {
			return fmt.Errorf("failed to load graph: %w", err)
		}
		if cfg.LargestComponent {
			g = graph.LargestComponent(g)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	store = middleware.Chain(store,
		middleware.NewLoggingMiddleware(logger),
		middleware.NewInstrumentedMiddleware(middleware.NewStoreMetrics(reg)),
	)

	srv := &http.Server{
		Addr: opts.Addr,
		Handler: httpAdapter.NewHandler(&httpAdapter.Server{
			Store:    store,
			Graph:    g,
			Gatherer: reg,
			Logger:   logger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "store", cfg.Store.Kind)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("shutting down server")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown did not complete", "err", err)
			return srv.Close()
		}
		return nil
	}
}
