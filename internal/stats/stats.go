// Package stats provides the shared statistical primitives used by the
// scoring and distribution engines. All functions are pure and total:
// malformed input (empty, all-zero) yields a defined sentinel rather
// than an error.
package stats

import "math"

// Gini computes the Gini coefficient over values sorted ascending:
// G = (2 * Σ(i * x_i)) / (n * Σx_i) - (n+1)/n, with 1-indexed i.
// Returns 0 for empty input or a zero total. The result is clamped to
// [0,1] to absorb floating-point overshoot.
func Gini(sortedAsc []float64) float64 {
	n := len(sortedAsc)
	if n == 0 {
		return 0
	}

	total := 0.0
	weighted := 0.0
	for i, v := range sortedAsc {
		total += v
		weighted += float64(i+1) * v
	}
	if total == 0 {
		return 0
	}

	g := (2*weighted)/(float64(n)*total) - float64(n+1)/float64(n)
	return clamp01(g)
}

// CoefficientOfVariation returns population stddev / mean, a
// variance-normalized dispersion measure. Returns 0 for empty input or
// a zero mean.
func CoefficientOfVariation(values []float64) float64 {
	mean := Mean(values)
	if mean == 0 {
		return 0
	}
	return PopulationStddev(values) / mean
}

// Mean returns the arithmetic mean, 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// PopulationStddev returns the population standard deviation
// (n denominator), 0 for empty input.
func PopulationStddev(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(n))
}

// Percentile returns the p-th percentile (p in [0,1]) of sorted using
// linear interpolation. sorted must be pre-sorted ascending.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	idx := p * float64(n-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
