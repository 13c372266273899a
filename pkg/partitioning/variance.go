package partitioning

import "gonum.org/v1/gonum/floats"

// variance returns the unweighted sample variance of x, delegating to
// gonum/floats rather than hand-rolling the accumulator — see DESIGN.md's
// pkg/partitioning entry for why this is worth a dependency.
func variance(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return floats.Variance(x, nil)
}
