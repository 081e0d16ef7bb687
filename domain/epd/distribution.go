package epd

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// DistributionProfile summarizes the shape of one metric's non-null values
// within a matched subset. It carries everything a box plot needs plus the
// moment statistics and a normality check.
type DistributionProfile struct {
	N            int
	Mean         float64
	StdDev       float64
	Min          float64
	Max          float64
	Q1           float64
	Median       float64
	Q3           float64
	Skewness     float64
	Kurtosis     float64
	OutlierCount int
	JarqueBera   float64
	NormalP      float64
	IsNormal     bool
}

// ProfileDistribution computes the distribution profile of values.
// An empty input yields a profile with N=0 and NaN statistics.
func ProfileDistribution(values []float64) DistributionProfile {
	profile := DistributionProfile{N: len(values)}
	if len(values) == 0 {
		nan := math.NaN()
		profile.Mean, profile.StdDev = nan, nan
		profile.Min, profile.Max = nan, nan
		profile.Q1, profile.Median, profile.Q3 = nan, nan, nan
		profile.Skewness, profile.Kurtosis = nan, nan
		profile.JarqueBera, profile.NormalP = nan, nan
		return profile
	}

	profile.Mean, _ = stats.Mean(values)
	profile.StdDev, _ = stats.StandardDeviation(values)
	profile.Min, _ = stats.Min(values)
	profile.Max, _ = stats.Max(values)

	profile.Q1 = quantile(values, 0.25)
	profile.Median = median(values)
	profile.Q3 = quantile(values, 0.75)

	profile.Skewness = skewness(values)
	profile.Kurtosis = kurtosis(values)
	profile.OutlierCount = countOutliers(values, profile.Q1, profile.Q3)

	profile.JarqueBera, profile.NormalP, profile.IsNormal = testNormality(len(values), profile.Skewness, profile.Kurtosis)

	return profile
}

// skewness computes the population Fisher-Pearson coefficient
// g1 = m3 / m2^(3/2), the scipy.stats.skew default. Undefined (NaN) for
// fewer than 3 values or zero variance.
func skewness(values []float64) float64 {
	n := float64(len(values))
	if n < 3 {
		return math.NaN()
	}

	mean, _ := stats.Mean(values)

	var m2, m3 float64
	for _, x := range values {
		d := x - mean
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= n
	m3 /= n

	if m2 == 0 {
		return math.NaN()
	}
	return m3 / math.Pow(m2, 1.5)
}

// kurtosis computes the population kurtosis b2 = m4 / m2^2 (not excess;
// 3 for a normal distribution). Undefined (NaN) for fewer than 4 values or
// zero variance.
func kurtosis(values []float64) float64 {
	n := float64(len(values))
	if n < 4 {
		return math.NaN()
	}

	mean, _ := stats.Mean(values)

	var m2, m4 float64
	for _, x := range values {
		d := x - mean
		m2 += d * d
		m4 += d * d * d * d
	}
	m2 /= n
	m4 /= n

	if m2 == 0 {
		return math.NaN()
	}
	return m4 / (m2 * m2)
}

// countOutliers counts values outside [Q1-1.5*IQR, Q3+1.5*IQR].
func countOutliers(values []float64, q1, q3 float64) int {
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	count := 0
	for _, x := range values {
		if x < lower || x > upper {
			count++
		}
	}
	return count
}

// testNormality runs a Jarque-Bera test on the moment statistics:
// JB = n/6 * (g1^2 + (b2-3)^2/4), compared against a chi-squared
// distribution with 2 degrees of freedom. Requires both moments to be
// defined; otherwise reports NaN and not-normal.
func testNormality(n int, skew, kurt float64) (jb, pValue float64, isNormal bool) {
	if math.IsNaN(skew) || math.IsNaN(kurt) {
		return math.NaN(), math.NaN(), false
	}

	excess := kurt - 3
	jb = float64(n) / 6.0 * (skew*skew + excess*excess/4.0)

	chi := distuv.ChiSquared{K: 2}
	pValue = 1 - chi.CDF(jb)
	return jb, pValue, pValue > 0.05
}
