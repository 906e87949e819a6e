package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/codemap/pkg/eval"
	"github.com/matzehuels/codemap/pkg/graph"
	"github.com/matzehuels/codemap/pkg/metrics"
)

// scoreCommand creates the score command for evaluating layout quality.
func (c *CLI) scoreCommand() *cobra.Command {
	var (
		usersFile string
		level     int
		chain     string
		jsonOut   bool
		tui       bool
	)

	cmd := &cobra.Command{
		Use:   "score [layout.json]",
		Short: "Score a layout against virtual-user archetypes",
		Long: `Score a layout against virtual-user archetypes.

The score command measures a positioned graph (edge visibility, node overlap,
crossings, stress, blob integrity and more) and checks the resulting facts
against declarative per-audience constraints. Built-in archetypes are used
unless --users points to a TOML file defining custom ones.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScore(args[0], usersFile, level, chain, jsonOut, tui)
		},
	}

	cmd.Flags().StringVarP(&usersFile, "users", "u", "", "TOML file with custom archetypes")
	cmd.Flags().IntVarP(&level, "level", "l", 0, "blob nesting level to measure")
	cmd.Flags().StringVar(&chain, "chain", "", "comma-separated node IDs to measure as a chain")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the fact bag and results as JSON")
	cmd.Flags().BoolVar(&tui, "tui", false, "browse results interactively")

	return cmd
}

// scoreOutput is the --json wire form.
type scoreOutput struct {
	Facts   metrics.Facts `json:"facts"`
	Results []scoreResult `json:"results"`
}

type scoreResult struct {
	User       string  `json:"user"`
	Satisfied  bool    `json:"satisfied"`
	Score      float64 `json:"score"`
	Failures   int     `json:"failures"`
	TopFailure string  `json:"top_failure,omitempty"`
}

// runScore measures the layout and evaluates every archetype.
func (c *CLI) runScore(input, usersFile string, level int, chain string, jsonOut, tui bool) error {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	archetypes := eval.BuiltinArchetypes()
	if usersFile != "" {
		archetypes, err = eval.LoadArchetypes(usersFile)
		if err != nil {
			return fmt.Errorf("load archetypes: %w", err)
		}
		c.Logger.Debug("loaded archetypes", "file", usersFile, "count", len(archetypes))
	}

	opts := metrics.CollectOpts{Level: level}
	if chain != "" {
		opts.ChainPath = strings.Split(chain, ",")
	}
	facts := metrics.Collect(g, opts)
	rows, results := eval.CheckAllUsers(archetypes, facts)

	switch {
	case jsonOut:
		out := scoreOutput{Facts: facts}
		for _, row := range rows {
			out.Results = append(out.Results, scoreResult{
				User:       row.Archetype.ID,
				Satisfied:  row.Satisfied,
				Score:      row.Score,
				Failures:   row.Failures,
				TopFailure: row.TopFailure,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)

	case tui:
		return runScoreTUI(rows, results)

	default:
		fmt.Print(eval.FormatSummary(rows))
		printNewline()
		for _, r := range results {
			fmt.Print(eval.FormatResult(r))
			printNewline()
		}
	}

	failing := 0
	for _, row := range rows {
		if !row.Satisfied {
			failing++
		}
	}
	if failing > 0 {
		printWarning("%d of %d archetypes unsatisfied", failing, len(rows))
	} else {
		printSuccess("All %d archetypes satisfied", len(rows))
	}
	return nil
}
