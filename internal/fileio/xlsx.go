package fileio

import (
	"io"

	excelize "github.com/xuri/excelize/v2"
)

func readXLSX(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	return firstColumn(rows), nil
}
