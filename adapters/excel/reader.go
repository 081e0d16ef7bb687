package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Divyaeh-iitm/Simpledashboard/domain/core"
	"github.com/Divyaeh-iitm/Simpledashboard/domain/epd"
	"github.com/Divyaeh-iitm/Simpledashboard/internal"
)

// Required dataset columns, matched against headers case-insensitively
// after trimming.
const (
	ColumnDescription = "Material description"
	ColumnEnergy      = "Embodied Energy"
	ColumnCarbon      = "Embodied Carbon"
)

// DataReader reads an EPD dataset from an Excel or CSV file on disk.
// It implements ports.DatasetReader.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader for the given path, deciding the format
// from the file extension.
func NewDataReader(filePath string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadDataset reads and parses the file into a typed dataset.
func (r *DataReader) ReadDataset() (*epd.Dataset, error) {
	internal.DefaultLogger.Debug("[DataReader] reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", r.fileType, err)
	}
	defer f.Close()

	return parse(r.fileType, f)
}

// ParseUpload parses an uploaded spreadsheet stream. The format is decided
// from the uploaded filename's extension.
func ParseUpload(filename string, r io.Reader) (*epd.Dataset, error) {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filename)) == ".csv" {
		fileType = "csv"
	}
	return parse(fileType, r)
}

func parse(fileType string, r io.Reader) (*epd.Dataset, error) {
	var rows [][]string
	var err error

	switch fileType {
	case "csv":
		rows, err = readCSVRows(r)
	case "xlsx":
		rows, err = readExcelRows(r)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", fileType)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("file must have at least a header row and one data row")
	}

	return buildDataset(rows)
}

// readExcelRows reads every row of the workbook's first sheet.
func readExcelRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	internal.DefaultLogger.Debug("[DataReader] sheet %q read (%d rows)", sheets[0], len(rows))
	return rows, nil
}

func readCSVRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows tolerated; short rows read as blanks

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	internal.DefaultLogger.Debug("[DataReader] CSV read (%d rows)", len(rows))
	return rows, nil
}

// buildDataset resolves the required columns in the header row and converts
// data rows into typed records. A blank or non-numeric metric cell becomes a
// nil value, never an error.
func buildDataset(rows [][]string) (*epd.Dataset, error) {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	descIdx, err := resolveColumn(headers, ColumnDescription)
	if err != nil {
		return nil, err
	}
	energyIdx, err := resolveColumn(headers, ColumnEnergy)
	if err != nil {
		return nil, err
	}
	carbonIdx, err := resolveColumn(headers, ColumnCarbon)
	if err != nil {
		return nil, err
	}

	records := make([]epd.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, epd.Record{
			Description:    cellAt(row, descIdx),
			EmbodiedEnergy: parseNumeric(cellAt(row, energyIdx)),
			EmbodiedCarbon: parseNumeric(cellAt(row, carbonIdx)),
		})
	}

	internal.DefaultLogger.Debug("[DataReader] dataset built (%d columns, %d records)", len(headers), len(records))

	return &epd.Dataset{Headers: headers, Records: records}, nil
}

// resolveColumn finds the index of a required column by trimmed,
// case-insensitive header comparison.
func resolveColumn(headers []string, name string) (int, error) {
	for i, h := range headers {
		if strings.EqualFold(h, name) {
			return i, nil
		}
	}
	return -1, core.NewSchemaError(name)
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumeric converts a cell to a float, treating blanks and anything
// unparseable as missing. Thousands separators are tolerated.
func parseNumeric(cell string) *float64 {
	if cell == "" {
		return nil
	}
	cleaned := strings.ReplaceAll(cell, ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}
