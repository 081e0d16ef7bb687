package epd

// Record is one row of an EPD dataset: a free-text material description plus
// the two impact metrics. A nil metric means the source cell was blank or
// non-numeric.
type Record struct {
	Description    string
	EmbodiedEnergy *float64
	EmbodiedCarbon *float64
}

// Metric selects which impact value an operation reads from a Record.
type Metric int

const (
	MetricEnergy Metric = iota
	MetricCarbon
)

// String returns the short metric label used in tables and logs.
func (m Metric) String() string {
	if m == MetricCarbon {
		return "EC"
	}
	return "EE"
}

// Value returns the record's value for the metric and whether it is present.
func (r Record) Value(m Metric) (float64, bool) {
	var v *float64
	switch m {
	case MetricCarbon:
		v = r.EmbodiedCarbon
	default:
		v = r.EmbodiedEnergy
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Dataset is an ordered collection of records together with the source
// header row, kept for preview display.
type Dataset struct {
	Headers []string
	Records []Record
}

// Len returns the number of data records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Preview returns up to n leading records for display.
func (d *Dataset) Preview(n int) []Record {
	if d == nil || n <= 0 {
		return nil
	}
	if n > len(d.Records) {
		n = len(d.Records)
	}
	return d.Records[:n]
}

// MetricValues collects the non-null values of one metric across records,
// preserving record order.
func MetricValues(records []Record, m Metric) []float64 {
	values := make([]float64, 0, len(records))
	for _, r := range records {
		if v, ok := r.Value(m); ok {
			values = append(values, v)
		}
	}
	return values
}
