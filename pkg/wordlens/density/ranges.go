package density

import (
	"fmt"

	"github.com/cognicore/wordlens/pkg/wordlens/internalerr"
)

// Class is the optimisation band a density falls in.
type Class string

const (
	Under   Class = "under"
	Optimal Class = "optimal"
	Over    Class = "over"
)

// Ranges are the thresholds used to classify densities, in percent.
type Ranges struct {
	UnderOptimized float64 `yaml:"under_optimized" json:"underOptimized"`
	OptimalMax     float64 `yaml:"optimal_max" json:"optimalMax"`
}

// DefaultRanges returns the stock thresholds.
func DefaultRanges() Ranges {
	return Ranges{UnderOptimized: 0.5, OptimalMax: 2.0}
}

// Validate requires 0 <= UnderOptimized < OptimalMax <= 100.
func (r Ranges) Validate() error {
	if r.UnderOptimized < 0 || r.OptimalMax > 100 || r.UnderOptimized >= r.OptimalMax {
		return fmt.Errorf("density ranges %.2f/%.2f: %w", r.UnderOptimized, r.OptimalMax, internalerr.ErrInvalidConfig)
	}
	return nil
}

// Classify places density in a band. Bounds belong to the optimal band.
func (r Ranges) Classify(density float64) Class {
	switch {
	case density < r.UnderOptimized:
		return Under
	case density > r.OptimalMax:
		return Over
	default:
		return Optimal
	}
}
