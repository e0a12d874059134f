package chooser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ReadCSVRows reads a comma-separated file, skips exactly one header line and
// returns the remaining rows. Rows may have differing cell counts.
func ReadCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only file

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Skip header row
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("CSV %s is empty", path)
		}
		return nil, fmt.Errorf("reading CSV header from %s: %w", path, err)
	}

	var rows [][]string
	for rowIdx := 0; ; rowIdx++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV %s row %d: %w", path, rowIdx, err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// firstCellFloat parses the first cell of a data row.
func firstCellFloat(row []string, rowIdx int) (float64, error) {
	if len(row) == 0 {
		return 0, fmt.Errorf("row %d is empty", rowIdx)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: invalid dipole %q: %w", rowIdx, row[0], err)
	}
	// ParseFloat accepts "NaN" and "Inf"; neither is a measured dipole.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("row %d: non-finite dipole %q", rowIdx, row[0])
	}
	return v, nil
}
