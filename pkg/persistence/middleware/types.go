// Package middleware wraps trajectory stores with cross-cutting behavior.
package middleware

import "github.com/aretw0/germwalk/pkg/ports"

// Middleware allows wrapping a TrajectoryStore to add behavior.
type Middleware func(ports.TrajectoryStore) ports.TrajectoryStore

// Chain applies middlewares so that the first one is the outermost.
func Chain(store ports.TrajectoryStore, mws ...Middleware) ports.TrajectoryStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
