package ports

import (
	"github.com/Divyaeh-iitm/Simpledashboard/domain/epd"
)

// DatasetReader loads an EPD dataset from some tabular source.
type DatasetReader interface {
	ReadDataset() (*epd.Dataset, error)
}
