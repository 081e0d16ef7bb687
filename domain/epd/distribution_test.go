package epd

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestProfileDistribution_KnownValues(t *testing.T) {
	// Hand-computed: mean 5, population stddev 2, Q1 4, median 4.5, Q3 5.5,
	// g1 = 5.25/8 = 0.65625, b2 = 44.5/16 = 2.78125, one IQR outlier (9).
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	p := ProfileDistribution(values)

	if p.N != 8 {
		t.Errorf("N = %d, want 8", p.N)
	}
	if !almostEqual(p.Mean, 5) {
		t.Errorf("mean = %v, want 5", p.Mean)
	}
	if !almostEqual(p.StdDev, 2) {
		t.Errorf("stddev = %v, want 2", p.StdDev)
	}
	if p.Min != 2 || p.Max != 9 {
		t.Errorf("min/max = %v/%v, want 2/9", p.Min, p.Max)
	}
	if !almostEqual(p.Q1, 4) || !almostEqual(p.Median, 4.5) || !almostEqual(p.Q3, 5.5) {
		t.Errorf("quartiles = %v/%v/%v, want 4/4.5/5.5", p.Q1, p.Median, p.Q3)
	}
	if !almostEqual(p.Skewness, 0.65625) {
		t.Errorf("skewness = %v, want 0.65625", p.Skewness)
	}
	if !almostEqual(p.Kurtosis, 2.78125) {
		t.Errorf("kurtosis = %v, want 2.78125", p.Kurtosis)
	}
	if p.OutlierCount != 1 {
		t.Errorf("outlier count = %d, want 1", p.OutlierCount)
	}
	if math.IsNaN(p.JarqueBera) || math.IsNaN(p.NormalP) {
		t.Errorf("normality test undefined for valid data: JB=%v p=%v", p.JarqueBera, p.NormalP)
	}
	if p.NormalP < 0 || p.NormalP > 1 {
		t.Errorf("normality p-value out of range: %v", p.NormalP)
	}
}

func TestProfileDistribution_Empty(t *testing.T) {
	p := ProfileDistribution(nil)
	if p.N != 0 {
		t.Errorf("N = %d, want 0", p.N)
	}
	for name, v := range map[string]float64{
		"mean": p.Mean, "stddev": p.StdDev, "min": p.Min, "max": p.Max,
		"q1": p.Q1, "median": p.Median, "q3": p.Q3,
		"skewness": p.Skewness, "kurtosis": p.Kurtosis,
	} {
		if !math.IsNaN(v) {
			t.Errorf("%s = %v, want NaN for empty input", name, v)
		}
	}
	if p.IsNormal {
		t.Error("empty input should not report normal")
	}
}

func TestProfileDistribution_ConstantValues(t *testing.T) {
	p := ProfileDistribution([]float64{3, 3, 3, 3})
	if !math.IsNaN(p.Skewness) || !math.IsNaN(p.Kurtosis) {
		t.Errorf("moments of constant data = %v/%v, want NaN", p.Skewness, p.Kurtosis)
	}
	if p.Median != 3 {
		t.Errorf("median = %v, want 3", p.Median)
	}
	if p.OutlierCount != 0 {
		t.Errorf("outlier count = %d, want 0", p.OutlierCount)
	}
}

func TestSkewness_InsufficientData(t *testing.T) {
	if got := skewness([]float64{1, 2}); !math.IsNaN(got) {
		t.Errorf("skewness of 2 values = %v, want NaN", got)
	}
}

func TestKurtosis_InsufficientData(t *testing.T) {
	if got := kurtosis([]float64{1, 2, 3}); !math.IsNaN(got) {
		t.Errorf("kurtosis of 3 values = %v, want NaN", got)
	}
}
