package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/codemap/pkg/graph"
	"github.com/matzehuels/codemap/pkg/layout"
)

// layoutCommand creates the layout command for computing graph layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)
	opts := layout.Options{}

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute a force-directed layout for a code-structure graph",
		Long: `Compute a force-directed layout for a code-structure graph.

The layout command takes a graph.json file, seeds groups on a circle in an
order that minimizes cross-group edge crossings, then runs the force
simulation (springs, charge, collision, and nested blob containment) until
it cools. The output is the same graph with node positions filled in.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache, refresh)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and recompute")

	// Layout flags
	cmd.Flags().Float64Var(&opts.Radius, "radius", 0, "placement circle radius (default 300)")
	cmd.Flags().IntVar(&opts.MaxTicks, "max-ticks", 0, "maximum simulation ticks (default 500)")
	cmd.Flags().IntVar(&opts.Levels, "levels", 0, "blob nesting levels to contain (default: from graph)")
	cmd.Flags().Float64Var(&opts.EdgeLength, "edge-length", 0, "ideal edge length (default 60)")
	cmd.Flags().Float64Var(&opts.ChargeStrength, "charge", 0, "many-body charge, negative repels (default -30)")

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts layout.Options, output string, noCache, refresh bool) error {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Refresh = refresh

	p := newProgress(c.Logger)
	result, cacheHit, err := runner.ComputeWithCacheInfo(ctx, g, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	p.done(fmt.Sprintf("Laid out %d nodes", result.NodeCount()))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := graph.WriteGraphFile(result, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.NodeCount(), result.EdgeCount(), cacheHit)
	printNewline()
	printNextStep("Score", "codemap score "+outputPath)

	return nil
}
