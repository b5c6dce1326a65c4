package runtime

import (
	"log/slog"

	"github.com/aretw0/germwalk/pkg/domain"
)

// Option defines a functional option for configuring a Population.
type Option func(*Population)

// WithLogger sets the structured logger. Nil keeps the no-op default.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Population) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Population) {
		p.hooks = hooks
	}
}

// WithScheduler replaces the default RandomActivation scheduler.
func WithScheduler(s Scheduler) Option {
	return func(p *Population) {
		if s != nil {
			p.scheduler = s
		}
	}
}
