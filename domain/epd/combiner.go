package epd

import (
	"math"
	"sort"
)

// SecondaryNone is the secondary label for a row whose primary material had
// no mapped secondary with data.
const SecondaryNone = "None"

// ComparisonRow pairs a primary material with its mapped secondary and the
// combined representative values. Rows are immutable once built.
type ComparisonRow struct {
	Primary        string
	Secondary      string
	CombinedEnergy float64
	CombinedCarbon float64
}

// Combined returns the combined value for the chosen metric.
func (r ComparisonRow) Combined(m Metric) float64 {
	if m == MetricCarbon {
		return r.CombinedCarbon
	}
	return r.CombinedEnergy
}

// Combine builds one comparison row per primary material that has a summary,
// in the order primaries are given. When the primary maps to a secondary
// that also has a summary, the combined values are the sums of the two
// trimmed medians; otherwise the row carries the primary's medians alone and
// reports the secondary as "None". Primaries without a summary are skipped.
func Combine(primaries []string, primarySummaries, secondarySummaries map[string]*MaterialSummary, mapping map[string]string) []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(primaries))

	for _, primary := range primaries {
		summary, ok := primarySummaries[primary]
		if !ok || summary == nil {
			continue
		}

		row := ComparisonRow{
			Primary:        primary,
			Secondary:      SecondaryNone,
			CombinedEnergy: summary.Median(MetricEnergy),
			CombinedCarbon: summary.Median(MetricCarbon),
		}

		if secondary := mapping[primary]; secondary != "" {
			if secSummary, ok := secondarySummaries[secondary]; ok && secSummary != nil {
				row.Secondary = secondary
				row.CombinedEnergy += secSummary.Median(MetricEnergy)
				row.CombinedCarbon += secSummary.Median(MetricCarbon)
			}
		}

		rows = append(rows, row)
	}
	return rows
}

// SortedBy returns a new slice ordered ascending by the chosen combined
// metric without mutating the input. Equal keys keep their input order;
// undefined (NaN) values order after every defined value.
func SortedBy(rows []ComparisonRow, m Metric) []ComparisonRow {
	out := make([]ComparisonRow, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Combined(m), out[j].Combined(m)
		if math.IsNaN(a) {
			return false
		}
		if math.IsNaN(b) {
			return true
		}
		return a < b
	})
	return out
}
