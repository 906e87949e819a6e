// Package layout runs the end-to-end layout computation: topology-aware
// circular seeding followed by the force simulation, with result caching.
//
// The interactive renderer drives pkg/force tick by tick itself; this package
// is the batch path used by the CLI and by tests that need a settled layout.
package layout

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codemap/pkg/cache"
	"github.com/matzehuels/codemap/pkg/force"
	"github.com/matzehuels/codemap/pkg/geom"
	"github.com/matzehuels/codemap/pkg/graph"
	"github.com/matzehuels/codemap/pkg/observability"
	"github.com/matzehuels/codemap/pkg/placement"
)

// ctxCheckInterval is how many ticks run between context cancellation checks.
const ctxCheckInterval = 25

// Runner executes layout computations with caching.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can share one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default key scheme, a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Close releases the underlying cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// ComputeWithCacheInfo computes (or retrieves) a settled layout for the graph
// and returns it alongside a cache-hit flag. The input graph is not mutated
// on a cache hit; on a miss its nodes are positioned in place and the same
// graph is returned.
func (r *Runner) ComputeWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (*graph.Graph, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}

	input, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, false, fmt.Errorf("hash graph: %w", err)
	}
	key := r.Keyer.LayoutKey(cache.Hash(input), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			cached, err := graph.ReadGraph(bytes.NewReader(data))
			if err == nil {
				r.Logger.Debug("layout cache hit", "key", key)
				return cached, true, nil
			}
			// Corrupt entry: drop it and recompute.
			_ = r.Cache.Delete(ctx, key)
		}
	}

	if err := Compute(ctx, g, opts); err != nil {
		return nil, false, err
	}

	if data, err := graph.MarshalGraph(g); err == nil {
		if err := r.Cache.Set(ctx, key, data, 0); err != nil {
			r.Logger.Debug("layout cache write failed", "err", err)
		}
	}
	return g, false, nil
}

// Compute seeds positions and runs the force simulation to rest, mutating
// node positions in place. Already-placed nodes keep their seed position.
func Compute(ctx context.Context, g *graph.Graph, opts Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	logger := opts.Logger

	levels := opts.Levels
	if levels == 0 {
		levels = g.NumLevels()
	}

	// Stage 1: topology-aware circular seeding.
	placeStart := time.Now()
	groups := g.GroupKeys(0)
	observability.Layout().OnPlacementStart(ctx, len(groups))

	weights := placement.CrossWeights(g, 0)
	order := placement.OptimalOrder(groups, weights)
	cost := placement.CrossingCost(order, weights)
	placement.SeedFromOrder(g, 0, order, geom.Point{}, opts.Radius)

	observability.Layout().OnPlacementComplete(ctx, len(groups), cost, time.Since(placeStart))
	logger.Debug("seeded positions",
		"groups", len(groups),
		"crossingCost", cost,
		"duration", time.Since(placeStart).Round(time.Millisecond))

	// Stage 2: force simulation.
	sim := force.NewSimulation(g.Nodes())
	for level := 0; level < levels; level++ {
		sim.AddForce(fmt.Sprintf("blob-%d", level), force.NewNestedBlobForce(level))
	}
	sim.AddForce("link", &force.Link{Edges: g.Edges(), Distance: opts.EdgeLength})
	sim.AddForce("charge", &force.ManyBody{Strength: opts.ChargeStrength})
	sim.AddForce("collide", &force.Collision{})

	simStart := time.Now()
	observability.Layout().OnSimulationStart(ctx, g.NodeCount(), 3+levels)

	remaining := opts.MaxTicks
	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		chunk := ctxCheckInterval
		if chunk > remaining {
			chunk = remaining
		}
		ran := sim.RunUntilCool(chunk)
		remaining -= chunk
		if ran < chunk {
			break // Cooled below alphaMin.
		}
	}

	observability.Layout().OnSimulationComplete(ctx, sim.Ticks(), sim.Alpha(), time.Since(simStart))
	logger.Debug("simulation settled",
		"ticks", sim.Ticks(),
		"alpha", sim.Alpha(),
		"duration", time.Since(simStart).Round(time.Millisecond))
	return nil
}
