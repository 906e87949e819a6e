package layout

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/codemap/pkg/cache"
	"github.com/matzehuels/codemap/pkg/errors"
)

// Default layout options.
const (
	// DefaultRadius is the placement circle radius for group anchors.
	DefaultRadius = 300.0

	// DefaultMaxTicks bounds a single simulation run.
	DefaultMaxTicks = 500

	// DefaultEdgeLength is the ideal spring length between linked nodes.
	DefaultEdgeLength = 60.0

	// DefaultChargeStrength is the many-body repulsion (negative repels).
	DefaultChargeStrength = -30.0
)

// Options configures one layout computation.
type Options struct {
	// Radius of the circle group anchors are placed on.
	Radius float64 `json:"radius,omitempty"`

	// MaxTicks caps the number of simulation ticks.
	MaxTicks int `json:"max_ticks,omitempty"`

	// Levels is the number of blob nesting levels to contain.
	// Zero derives it from the graph's group paths.
	Levels int `json:"levels,omitempty"`

	// EdgeLength is the ideal spring length.
	EdgeLength float64 `json:"edge_length,omitempty"`

	// ChargeStrength is the many-body charge (negative repels).
	ChargeStrength float64 `json:"charge_strength,omitempty"`

	// Refresh bypasses the cache and recomputes.
	Refresh bool `json:"-"`

	// Logger for progress output. Defaults to log.Default().
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults fills zero fields and rejects nonsense values.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Radius == 0 {
		o.Radius = DefaultRadius
	}
	if o.MaxTicks == 0 {
		o.MaxTicks = DefaultMaxTicks
	}
	if o.EdgeLength == 0 {
		o.EdgeLength = DefaultEdgeLength
	}
	if o.ChargeStrength == 0 {
		o.ChargeStrength = DefaultChargeStrength
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}

	if o.Radius < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "radius must be positive, got %g", o.Radius)
	}
	if o.MaxTicks < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "max ticks must be positive, got %d", o.MaxTicks)
	}
	if o.EdgeLength < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "edge length must be positive, got %g", o.EdgeLength)
	}
	if o.Levels < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "levels must not be negative, got %d", o.Levels)
	}
	return nil
}

// LayoutKeyOpts converts the options to their cache-key form.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Radius:    o.Radius,
		Ticks:     o.MaxTicks,
		Levels:    o.Levels,
		EdgeLen:   o.EdgeLength,
		ChargeStr: o.ChargeStrength,
	}
}
