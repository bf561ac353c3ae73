package fileio

import (
	"encoding/csv"
	"io"
)

// readCSV returns the first field of each record. encoding/csv drops blank lines on
// its own; a record whose first field is empty is kept as "".
func readCSV(r io.Reader) ([]string, error) {
	dr, err := decodeUTF8(r)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(dr)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var lines []string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		v := ""
		if len(rec) > 0 {
			v = rec[0]
		}
		lines = append(lines, v)
	}
	return lines, nil
}
