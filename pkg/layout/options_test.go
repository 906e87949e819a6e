package layout

import (
	"testing"

	"github.com/matzehuels/codemap/pkg/errors"
)

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.Radius != DefaultRadius {
		t.Errorf("Radius = %g, want %g", opts.Radius, DefaultRadius)
	}
	if opts.MaxTicks != DefaultMaxTicks {
		t.Errorf("MaxTicks = %d, want %d", opts.MaxTicks, DefaultMaxTicks)
	}
	if opts.EdgeLength != DefaultEdgeLength {
		t.Errorf("EdgeLength = %g, want %g", opts.EdgeLength, DefaultEdgeLength)
	}
	if opts.ChargeStrength != DefaultChargeStrength {
		t.Errorf("ChargeStrength = %g, want %g", opts.ChargeStrength, DefaultChargeStrength)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative radius", Options{Radius: -1}},
		{"negative ticks", Options{MaxTicks: -5}},
		{"negative edge length", Options{EdgeLength: -10}},
		{"negative levels", Options{Levels: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, errors.ErrCodeInvalidOption) {
				t.Errorf("want INVALID_OPTION, got %v", err)
			}
		})
	}
}

func TestLayoutKeyOptsCarriesAllKnobs(t *testing.T) {
	opts := Options{Radius: 200, MaxTicks: 100, Levels: 2, EdgeLength: 50, ChargeStrength: -40}
	key := opts.LayoutKeyOpts()

	if key.Radius != 200 || key.Ticks != 100 || key.Levels != 2 || key.EdgeLen != 50 || key.ChargeStr != -40 {
		t.Errorf("LayoutKeyOpts = %+v, want all option fields carried over", key)
	}
}
