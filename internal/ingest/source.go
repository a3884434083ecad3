package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/bedimand/PreditorDeBonsFilmes/internal/logger"
)

// ReadSource loads a source batch from disk, picking the reader by file
// extension. Spreadsheet and CSV cells arrive as strings (list columns as
// serialized literals); JSON records may carry native lists.
func ReadSource(path string) ([]RawRecord, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		return readXLSX(path)
	case ".csv":
		return readCSV(path)
	case ".json":
		return readJSON(path)
	default:
		return nil, fmt.Errorf("unsupported source format %q (want .xlsx, .csv or .json)", ext)
	}
}

func readXLSX(path string) ([]RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("failed to close spreadsheet", "path", path, "error", err)
		}
	}()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return tableToRecords(rows[0], rows[1:]), nil
}

func readCSV(path string) ([]RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return tableToRecords(rows[0], rows[1:]), nil
}

func readJSON(path string) ([]RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read json: %w", err)
	}
	var records []RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse json source: %w", err)
	}
	return records, nil
}

func tableToRecords(header []string, rows [][]string) []RawRecord {
	records := make([]RawRecord, 0, len(rows))
	for _, row := range rows {
		rec := make(RawRecord, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			// Readers trim trailing empty cells, so short rows are normal.
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		if len(rec) > 0 {
			records = append(records, rec)
		}
	}
	return records
}
