package ports

import (
	"github.com/Divyaeh-iitm/Simpledashboard/domain/epd"
)

// MaterialAnalyzer produces a summary for one material against a dataset.
// Implementations must be pure: no side effects, deterministic for
// identical inputs.
type MaterialAnalyzer interface {
	Analyze(ds *epd.Dataset, material string) (*epd.MaterialSummary, error)
}
