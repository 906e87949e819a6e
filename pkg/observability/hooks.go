// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about placement, simulation runs, and
// layout evaluation.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnSimulationStart(ctx, nodeCount, forceCount)
//	// ... run ticks ...
//	observability.Layout().OnSimulationComplete(ctx, ticks, alpha, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from placement and force simulation.
type LayoutHooks interface {
	// Placement events
	OnPlacementStart(ctx context.Context, groups int)
	OnPlacementComplete(ctx context.Context, groups int, crossingCost float64, duration time.Duration)

	// Simulation events
	OnSimulationStart(ctx context.Context, nodeCount, forceCount int)
	OnSimulationComplete(ctx context.Context, ticks int, alpha float64, duration time.Duration)
}

// =============================================================================
// Evaluation Hooks
// =============================================================================

// EvalHooks receives events from layout quality evaluation.
type EvalHooks interface {
	// OnMeasure records one facts collection over a layout snapshot.
	OnMeasure(ctx context.Context, nodeCount, edgeCount int, duration time.Duration)

	// OnUserChecked records one archetype evaluation.
	OnUserChecked(ctx context.Context, userID string, satisfied bool, score float64)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnPlacementStart(context.Context, int)                            {}
func (NoopLayoutHooks) OnPlacementComplete(context.Context, int, float64, time.Duration) {}
func (NoopLayoutHooks) OnSimulationStart(context.Context, int, int)                      {}
func (NoopLayoutHooks) OnSimulationComplete(context.Context, int, float64, time.Duration) {
}

// NoopEvalHooks is a no-op implementation of EvalHooks.
type NoopEvalHooks struct{}

func (NoopEvalHooks) OnMeasure(context.Context, int, int, time.Duration)    {}
func (NoopEvalHooks) OnUserChecked(context.Context, string, bool, float64) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	evalHooks   EvalHooks   = NoopEvalHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout work.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetEvalHooks registers custom evaluation hooks.
// This should be called once at application startup before any evaluation.
func SetEvalHooks(h EvalHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		evalHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Eval returns the registered evaluation hooks.
func Eval() EvalHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return evalHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	evalHooks = NoopEvalHooks{}
}
