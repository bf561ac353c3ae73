package fileio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrUnsupported = errors.New("unsupported input file")

// ReadLines picks a reader by extension and returns the raw input lines.
// Spreadsheets contribute the first column of their first sheet; anything that is
// not .csv/.xlsx/.xls is read as newline-delimited text.
func ReadLines(r io.Reader, filename string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".xlsm":
		return readXLSX(r)
	case ".xls":
		return readXLS(r)
	case ".csv":
		return readCSV(r)
	case ".xlsb", ".ods", ".numbers":
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	default:
		return readText(r)
	}
}

// ReadFile opens path and reads its lines.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	defer f.Close()

	lines, err := ReadLines(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", path, err)
	}
	return lines, nil
}

// firstColumn takes cell 0 of every row up to the last row that has it non-empty.
// Gaps inside that range stay as "" so they are reported as empty lines.
func firstColumn(rows [][]string) []string {
	last := -1
	for i, row := range rows {
		if len(row) > 0 && row[0] != "" {
			last = i
		}
	}
	out := make([]string, 0, last+1)
	for i := 0; i <= last; i++ {
		v := ""
		if len(rows[i]) > 0 {
			v = rows[i][0]
		}
		out = append(out, v)
	}
	return out
}
