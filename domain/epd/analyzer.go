package epd

import (
	"math"
	"strings"

	"github.com/Divyaeh-iitm/Simpledashboard/domain/core"
)

// TrimStats records what the 1.5xIQR outlier rule did to one metric's values.
type TrimStats struct {
	LowerBound float64
	UpperBound float64
	Retained   int
	Removed    int
}

// MaterialSummary is the result of analyzing one material name against a
// dataset. It exists only when the material matched at least one record.
type MaterialSummary struct {
	Material string

	// Skewness of the raw (untrimmed) non-null values per metric.
	SkewnessEnergy float64
	SkewnessCarbon float64

	// Median of the outlier-trimmed non-null values per metric.
	MedianEnergy float64
	MedianCarbon float64

	EnergyTrim TrimStats
	CarbonTrim TrimStats

	EnergyProfile DistributionProfile
	CarbonProfile DistributionProfile

	// Matched is the full matched subset, kept for downstream display.
	Matched []Record
}

// Median returns the trimmed median for the chosen metric.
func (s *MaterialSummary) Median(m Metric) float64 {
	if m == MetricCarbon {
		return s.MedianCarbon
	}
	return s.MedianEnergy
}

// MaterialStatsAnalyzer computes per-material summary statistics:
// case-insensitive substring filter, skewness, 1.5xIQR outlier trim,
// trimmed median. It is stateless; every call is pure in its inputs.
type MaterialStatsAnalyzer struct{}

// NewMaterialStatsAnalyzer creates a new analyzer.
func NewMaterialStatsAnalyzer() *MaterialStatsAnalyzer {
	return &MaterialStatsAnalyzer{}
}

// Analyze summarizes one material against the dataset. A material that
// matches no record yields core.ErrNoMatch, the expected "no data" outcome.
// Undefined statistics (insufficient or degenerate data) are reported as NaN
// and never abort the analysis.
func (a *MaterialStatsAnalyzer) Analyze(ds *Dataset, material string) (*MaterialSummary, error) {
	var records []Record
	if ds != nil {
		records = ds.Records
	}

	matched := FilterByMaterial(records, material)
	if len(matched) == 0 {
		return nil, core.NewNoMatchError(material)
	}

	energy := MetricValues(matched, MetricEnergy)
	carbon := MetricValues(matched, MetricCarbon)

	summary := &MaterialSummary{
		Material:       material,
		SkewnessEnergy: skewness(energy),
		SkewnessCarbon: skewness(carbon),
		EnergyProfile:  ProfileDistribution(energy),
		CarbonProfile:  ProfileDistribution(carbon),
		Matched:        matched,
	}
	summary.MedianEnergy, summary.EnergyTrim = trimmedMedian(energy)
	summary.MedianCarbon, summary.CarbonTrim = trimmedMedian(carbon)

	return summary, nil
}

// FilterByMaterial selects every record whose description contains material
// as a case-insensitive substring. Records with a blank description never
// match, mirroring how the source data treats missing descriptions.
func FilterByMaterial(records []Record, material string) []Record {
	needle := strings.ToLower(strings.TrimSpace(material))

	var matched []Record
	for _, r := range records {
		desc := strings.TrimSpace(r.Description)
		if desc == "" {
			continue
		}
		if strings.Contains(strings.ToLower(desc), needle) {
			matched = append(matched, r)
		}
	}
	return matched
}

// trimmedMedian applies the 1.5xIQR rule and returns the median of the
// retained values. Quartiles use the package's pinned linear-interpolation
// convention. With no values, or nothing retained, the median is NaN; there
// is deliberately no fallback to the untrimmed median.
func trimmedMedian(values []float64) (float64, TrimStats) {
	if len(values) == 0 {
		nan := math.NaN()
		return nan, TrimStats{LowerBound: nan, UpperBound: nan}
	}

	q1 := quantile(values, 0.25)
	q3 := quantile(values, 0.75)
	iqr := q3 - q1

	trim := TrimStats{
		LowerBound: q1 - 1.5*iqr,
		UpperBound: q3 + 1.5*iqr,
	}

	retained := make([]float64, 0, len(values))
	for _, v := range values {
		if v >= trim.LowerBound && v <= trim.UpperBound {
			retained = append(retained, v)
		}
	}
	trim.Retained = len(retained)
	trim.Removed = len(values) - len(retained)

	if len(retained) == 0 {
		return math.NaN(), trim
	}
	return median(retained), trim
}
