package epd

import (
	"math"
	"testing"
)

func TestQuantile_LinearInterpolation(t *testing.T) {
	values := []float64{9, 10, 11, 12, 13, 1000}

	cases := []struct {
		name string
		p    float64
		want float64
	}{
		{"q1", 0.25, 10.25},
		{"median", 0.50, 11.5},
		{"q3", 0.75, 12.75},
		{"min", 0.0, 9},
		{"max", 1.0, 1000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := quantile(values, tc.p)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("quantile(%v, %v) = %v, want %v", values, tc.p, got, tc.want)
			}
		})
	}
}

func TestQuantile_SmallInputs(t *testing.T) {
	if got := quantile(nil, 0.5); !math.IsNaN(got) {
		t.Errorf("quantile of empty input = %v, want NaN", got)
	}
	if got := quantile([]float64{5}, 0.25); got != 5 {
		t.Errorf("quantile of single value = %v, want 5", got)
	}
	if got := quantile([]float64{1, 2, 3, 4}, 0.25); math.Abs(got-1.75) > 1e-9 {
		t.Errorf("quantile([1 2 3 4], 0.25) = %v, want 1.75", got)
	}
}

func TestQuantile_DoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	quantile(values, 0.5)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("quantile mutated its input: %v", values)
	}
}

func TestMedian(t *testing.T) {
	if got := median([]float64{3, 1, 2}); got != 2 {
		t.Errorf("median odd = %v, want 2", got)
	}
	if got := median([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Errorf("median even = %v, want 2.5", got)
	}
}
