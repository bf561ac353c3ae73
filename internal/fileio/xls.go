package fileio

import (
	"bytes"
	"errors"
	"io"

	xls "github.com/extrame/xls"
)

// legacy .xls exports are usually cp1251, sometimes UTF-8/KOI8-R
var xlsCharsets = []string{"windows-1251", "utf-8", "koi8-r"}

func readXLS(r io.Reader) ([]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var wb *xls.WorkBook
	var lastErr error
	for _, ch := range xlsCharsets {
		wb, err = xls.OpenReader(bytes.NewReader(b), ch)
		if err == nil && wb != nil {
			lastErr = nil
			break
		}
		lastErr = err
	}
	if wb == nil {
		if lastErr == nil {
			lastErr = errors.New("xls: failed to open workbook")
		}
		return nil, lastErr
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, nil
	}

	// Row.LastCol is unreliable on some exports, so only column 0 is read
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		rows = append(rows, []string{row.Col(0)})
	}
	return firstColumn(rows), nil
}
