package eval

import (
	"context"
	"math"
	"sort"

	"github.com/matzehuels/codemap/pkg/errors"
	"github.com/matzehuels/codemap/pkg/metrics"
	"github.com/matzehuels/codemap/pkg/observability"
)

// =============================================================================
// Types
// =============================================================================

// Severity ranks how badly a failed constraint hurts the archetype's goal.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

// rank orders severities for sorting; lower sorts first.
func (s Severity) rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityMajor:
		return 1
	case SeverityMinor:
		return 2
	default:
		return 3
	}
}

// Valid reports whether the severity is one of the known tiers.
func (s Severity) Valid() bool { return s.rank() < 3 }

// Op is a threshold comparison operator.
type Op string

const (
	OpGT     Op = ">"
	OpGTE    Op = ">="
	OpLT     Op = "<"
	OpLTE    Op = "<="
	OpEQ     Op = "=="
	OpNearly Op = "~0" // Actual is approximately zero.
)

// Valid reports whether the operator is known.
func (o Op) Valid() bool {
	switch o {
	case OpGT, OpGTE, OpLT, OpLTE, OpEQ, OpNearly:
		return true
	}
	return false
}

// Constraint is one declarative threshold rule over a fact path.
type Constraint struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Fact        string   `toml:"fact"` // Dot path into the metrics fact bag.
	Op          Op       `toml:"op"`
	Threshold   float64  `toml:"threshold"`
	Severity    Severity `toml:"severity"`
}

// Archetype is a named audience with an ordered constraint list.
type Archetype struct {
	ID          string       `toml:"id"`
	Name        string       `toml:"name"`
	Goal        string       `toml:"goal"`
	Constraints []Constraint `toml:"constraint"`
}

// Validate checks structural soundness of the archetype definition.
func (a *Archetype) Validate() error {
	if a.ID == "" {
		return errors.New(errors.ErrCodeInvalidArchetype, "archetype is missing an id")
	}
	if len(a.Constraints) == 0 {
		return errors.New(errors.ErrCodeInvalidArchetype, "archetype %q has no constraints", a.ID)
	}
	for i, c := range a.Constraints {
		if c.Name == "" {
			return errors.New(errors.ErrCodeInvalidArchetype, "archetype %q constraint %d is missing a name", a.ID, i)
		}
		if c.Fact == "" {
			return errors.New(errors.ErrCodeInvalidArchetype, "archetype %q constraint %q is missing a fact path", a.ID, c.Name)
		}
		if !c.Op.Valid() {
			return errors.New(errors.ErrCodeInvalidArchetype, "archetype %q constraint %q has unknown operator %q", a.ID, c.Name, c.Op)
		}
		if !c.Severity.Valid() {
			return errors.New(errors.ErrCodeInvalidArchetype, "archetype %q constraint %q has unknown severity %q", a.ID, c.Name, c.Severity)
		}
	}
	return nil
}

// ConstraintResult is the evaluation of one constraint against one fact bag.
type ConstraintResult struct {
	Constraint Constraint
	Actual     float64
	Passed     bool
	Missing    bool // Fact path absent or operator unknown.

	// Gap is the signed distance to the threshold in the "good" direction:
	// positive means margin, negative means shortfall.
	Gap float64

	// GapFraction is Gap normalized by |threshold|, or ±1 when the
	// threshold is approximately zero.
	GapFraction float64
}

// Result is the full evaluation of one archetype. Every constraint lands in
// exactly one of the three lists: Failures, NearMisses (met, but with
// GapFraction < 0.10), or Passing (met with comfortable margin).
type Result struct {
	Archetype  Archetype
	Satisfied  bool
	Score      float64 // Non-failing / total constraints.
	Failures   []ConstraintResult
	NearMisses []ConstraintResult
	Passing    []ConstraintResult
}

// nearMissBand is the passing-side gap fraction below which a constraint is
// flagged as a near-miss.
const nearMissBand = 0.10

// nearlyZeroEps bounds the ~0 operator and threshold normalization.
const nearlyZeroEps = 1e-6

// =============================================================================
// Evaluation
// =============================================================================

// evalConstraint applies one constraint to the fact bag.
func evalConstraint(c Constraint, facts metrics.Facts) ConstraintResult {
	res := ConstraintResult{Constraint: c}

	actual, ok := facts.Lookup(c.Fact)
	if !ok || !c.Op.Valid() {
		// Fail closed: a missing measurement never reads as passing.
		res.Missing = true
		res.Gap = math.Inf(-1)
		res.GapFraction = -1
		return res
	}
	res.Actual = actual

	switch c.Op {
	case OpGT:
		res.Passed = actual > c.Threshold
		res.Gap = actual - c.Threshold
	case OpGTE:
		res.Passed = actual >= c.Threshold
		res.Gap = actual - c.Threshold
	case OpLT:
		res.Passed = actual < c.Threshold
		res.Gap = c.Threshold - actual
	case OpLTE:
		res.Passed = actual <= c.Threshold
		res.Gap = c.Threshold - actual
	case OpEQ:
		res.Passed = actual == c.Threshold
		res.Gap = -math.Abs(actual - c.Threshold)
	case OpNearly:
		res.Passed = math.Abs(actual) < nearlyZeroEps
		res.Gap = nearlyZeroEps - math.Abs(actual)
	}

	if math.Abs(c.Threshold) < nearlyZeroEps {
		if res.Gap >= 0 {
			res.GapFraction = 1
		} else {
			res.GapFraction = -1
		}
	} else {
		res.GapFraction = res.Gap / math.Abs(c.Threshold)
	}
	return res
}

// CheckUser evaluates every constraint of the archetype against the facts.
func CheckUser(a Archetype, facts metrics.Facts) Result {
	res := Result{Archetype: a}
	for _, c := range a.Constraints {
		cr := evalConstraint(c, facts)
		switch {
		case !cr.Passed:
			res.Failures = append(res.Failures, cr)
		case cr.GapFraction < nearMissBand:
			res.NearMisses = append(res.NearMisses, cr)
		default:
			res.Passing = append(res.Passing, cr)
		}
	}

	// Worst first: severity tier, then smallest margin within a tier.
	sort.SliceStable(res.Failures, func(i, j int) bool {
		a, b := res.Failures[i], res.Failures[j]
		if ra, rb := a.Constraint.Severity.rank(), b.Constraint.Severity.rank(); ra != rb {
			return ra < rb
		}
		return a.GapFraction < b.GapFraction
	})

	res.Satisfied = len(res.Failures) == 0
	if total := len(a.Constraints); total > 0 {
		// Near-misses still count as met; only failures cost score.
		res.Score = float64(total-len(res.Failures)) / float64(total)
	}

	observability.Eval().OnUserChecked(context.Background(), a.ID, res.Satisfied, res.Score)
	return res
}

// SummaryRow is a one-line comparison entry for one archetype.
type SummaryRow struct {
	Archetype  Archetype
	Satisfied  bool
	Score      float64
	Failures   int
	TopFailure string // Name of the worst failing constraint, "" when satisfied.
}

// CheckAllUsers evaluates every archetype and returns one summary row each,
// in archetype order. Full results are returned alongside for detail views.
func CheckAllUsers(archetypes []Archetype, facts metrics.Facts) ([]SummaryRow, []Result) {
	rows := make([]SummaryRow, 0, len(archetypes))
	results := make([]Result, 0, len(archetypes))
	for _, a := range archetypes {
		r := CheckUser(a, facts)
		row := SummaryRow{
			Archetype: a,
			Satisfied: r.Satisfied,
			Score:     r.Score,
			Failures:  len(r.Failures),
		}
		if len(r.Failures) > 0 {
			row.TopFailure = r.Failures[0].Constraint.Name
		}
		rows = append(rows, row)
		results = append(results, r)
	}
	return rows, results
}
