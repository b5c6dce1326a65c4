package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/germwalk/internal/adapters/memory"
	"github.com/aretw0/germwalk/internal/adapters/redis"
	"github.com/aretw0/germwalk/internal/adapters/sqlite"
	"github.com/aretw0/germwalk/internal/config"
	"github.com/aretw0/germwalk/internal/logging"
	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/ports"
)

// NewLogger builds the application logger from the log section.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	return logging.NewWithWriter(w, logging.ParseLevel(cfg.Level), logging.Format(strings.ToLower(cfg.Format)))
}

// OpenStore creates the trajectory store selected by cfg.Kind.
// It returns a nil store for kind "none". The close func is never nil.
func OpenStore(cfg config.StoreConfig) (ports.TrajectoryStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Kind {
	case config.StoreNone, "":
		return nil, noop, nil
	case config.StoreMemory:
		return memory.New(), noop, nil
	case config.StoreRedis:
		var opts []redis.Option
		if cfg.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.TTL))
		}
		s := redis.New(cfg.Addr, cfg.Password, cfg.DB, opts...)
		return s, s.Close, nil
	case config.StoreSQLite:
		s, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: unknown store kind %q", domain.ErrInvalidConfiguration, cfg.Kind)
	}
}
