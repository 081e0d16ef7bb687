package epd

import (
	"math"
	"sort"
)

// quantile computes the p-quantile (0 <= p <= 1) of values using linear
// interpolation between order statistics: h = p*(n-1), interpolating between
// floor(h) and floor(h)+1. This is the numpy/pandas default convention
// (R type 7) and is the single interpolation method used everywhere in this
// package. Returns NaN for an empty input.
func quantile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return values[0]
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	h := p * float64(n-1)
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// median is the 50th percentile under the same interpolation convention.
func median(values []float64) float64 {
	return quantile(values, 0.5)
}
