// Package gonumdist backs the quantile collaborator with gonum's
// distribution implementations.
package gonumdist

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"statlab/domain/interval"
)

// Quantiler implements interval.Quantiler on gonum.org/v1/gonum/stat/distuv.
type Quantiler struct{}

// New creates a distuv-backed quantiler.
func New() *Quantiler {
	return &Quantiler{}
}

// Quantile returns the inverse CDF of the given distribution at p.
func (q *Quantiler) Quantile(dist interval.Distribution, p float64) (float64, error) {
	if p <= 0 || p >= 1 {
		return 0, fmt.Errorf("probability %g outside (0, 1)", p)
	}

	var value float64
	switch dist.Kind {
	case interval.KindNormal:
		value = distuv.UnitNormal.Quantile(p)
	case interval.KindStudentsT:
		if dist.DegreesOfFreedom <= 0 {
			return 0, fmt.Errorf("students t requires positive degrees of freedom, got %g", dist.DegreesOfFreedom)
		}
		value = distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dist.DegreesOfFreedom}.Quantile(p)
	case interval.KindChiSquared:
		if dist.DegreesOfFreedom <= 0 {
			return 0, fmt.Errorf("chi-squared requires positive degrees of freedom, got %g", dist.DegreesOfFreedom)
		}
		value = distuv.ChiSquared{K: dist.DegreesOfFreedom}.Quantile(p)
	default:
		return 0, fmt.Errorf("unsupported distribution %q", dist.Kind)
	}

	if math.IsNaN(value) {
		return 0, fmt.Errorf("quantile of %s at p=%g is not a number", dist, p)
	}
	return value, nil
}
