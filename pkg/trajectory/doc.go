// Package trajectory accumulates per-agent paths from population hooks
// and exports them as JSON or CSV.
package trajectory
