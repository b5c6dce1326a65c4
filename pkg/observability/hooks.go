package observability

import (
	"log/slog"

	"github.com/aretw0/germwalk/pkg/domain"
)

// Chain merges hook sets. Each callback runs the non-nil callbacks of the
// given sets in argument order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var (
		inits     []func(*domain.InitEvent)
		moves     []func(*domain.MoveEvent)
		ticks     []func(*domain.TickEvent)
		completes []func(*domain.CompleteEvent)
	)
	for _, h := range sets {
		if h.OnInit != nil {
			inits = append(inits, h.OnInit)
		}
		if h.OnMove != nil {
			moves = append(moves, h.OnMove)
		}
		if h.OnTick != nil {
			ticks = append(ticks, h.OnTick)
		}
		if h.OnComplete != nil {
			completes = append(completes, h.OnComplete)
		}
	}

	var out domain.LifecycleHooks
	if len(inits) > 0 {
		out.OnInit = func(e *domain.InitEvent) {
			for _, fn := range inits {
				fn(e)
			}
		}
	}
	// OnMove stays nil when nobody listens so the population skips
	// capturing the previous positions.
	if len(moves) > 0 {
		out.OnMove = func(e *domain.MoveEvent) {
			for _, fn := range moves {
				fn(e)
			}
		}
	}
	if len(ticks) > 0 {
		out.OnTick = func(e *domain.TickEvent) {
			for _, fn := range ticks {
				fn(e)
			}
		}
	}
	if len(completes) > 0 {
		out.OnComplete = func(e *domain.CompleteEvent) {
			for _, fn := range completes {
				fn(e)
			}
		}
	}
	return out
}

// LoggingHooks logs every tick at Debug and the run boundaries at Info.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnInit: func(e *domain.InitEvent) {
			logger.Info("run_start", "agents", e.Agents, "seed", e.Seed)
		},
		OnTick: func(e *domain.TickEvent) {
			logger.Debug("tick",
				"tick", e.Tick,
				"steps", e.Steps,
				"moved", e.Moved,
				"stalled", e.Stalled,
				"duration", e.Duration,
			)
		},
		OnComplete: func(e *domain.CompleteEvent) {
			logger.Info("run_complete", "ticks", e.Ticks)
		},
	}
}
