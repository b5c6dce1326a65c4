package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/germwalk"
	"github.com/aretw0/germwalk/internal/config"
	"github.com/aretw0/germwalk/internal/presentation/tui"
	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/observability"
	"github.com/aretw0/germwalk/pkg/persistence/middleware"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Config config.Config
	// Format overrides the format inferred from Config.Output.
	Format   string
	Progress bool
	Summary  bool
	Quiet    bool
	// Out receives trajectories when Config.Output is empty.
	Out io.Writer
	// Err receives logs, progress and the summary.
	Err io.Writer
}

// Execute runs one simulation end to end and exports its trajectories.
func Execute(ctx context.Context, opts RunOptions) (*germwalk.Simulation, error) {
	cfg := opts.Config
	if opts.Err == nil {
		opts.Err = io.Discard
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Graph == "" {
		return nil, fmt.Errorf("%w: a graph file is required", domain.ErrInvalidConfiguration)
	}

	logger := NewLogger(cfg.Log, opts.Err)

	store, closeStore, err := OpenStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	hooks := []domain.LifecycleHooks{observability.LoggingHooks(logger)}
	mws := []middleware.Middleware{middleware.NewLoggingMiddleware(logger)}

	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		hooks = append(hooks, observability.NewMetrics(reg).Hooks())
		mws = append(mws, middleware.NewInstrumentedMiddleware(middleware.NewStoreMetrics(reg)))
		stop := serveMetrics(cfg.Metrics.Addr, reg, opts.Err)
		defer stop()
	}
	if opts.Progress && !opts.Quiet {
		hooks = append(hooks, tui.NewProgress(opts.Err).Hooks())
	}

	simOpts := []germwalk.Option{
		germwalk.WithSteps(cfg.Steps),
		germwalk.WithAgents(cfg.Agents),
		germwalk.WithLargestComponent(cfg.LargestComponent),
		germwalk.WithLogger(logger),
		germwalk.WithLifecycleHooks(observability.Chain(hooks...)),
	}
	if cfg.Seed != nil {
		simOpts = append(simOpts, germwalk.WithSeed(*cfg.Seed))
	}
	if store != nil {
		simOpts = append(simOpts, germwalk.WithStore(middleware.Chain(store, mws...)))
	}

	sim, err := germwalk.New(cfg.Graph, simOpts...)
	if err != nil {
		return nil, err
	}
	if err := sim.Init(); err != nil {
		return sim, err
	}
	if err := sim.Run(ctx); err != nil {
		return sim, err
	}

	format := FormatFor(opts.Format, cfg.Output)
	if cfg.Output != "" {
		err = WriteTrajectoriesFile(cfg.Output, format, sim.Trajectories())
	} else if opts.Out != nil {
		err = WriteTrajectories(opts.Out, format, sim.Trajectories())
	}
	if err != nil {
		return sim, err
	}

	if opts.Summary && !opts.Quiet {
		md := tui.Summary(sim.Info(), sim.Trajectories(), 5)
		rendered, rerr := tui.NewRenderer()(md)
		if rerr != nil {
			rendered = md
		}
		fmt.Fprint(opts.Err, rendered)
	}
	return sim, nil
}

// serveMetrics exposes reg on addr until the returned stop func is called.
func serveMetrics(addr string, reg *prometheus.Registry, errOut io.Writer) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(errOut, "metrics server error: %v\n", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
