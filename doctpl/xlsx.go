package doctpl

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ItemsFromXLSX reads the rows of a worksheet as grid items. The first row
// holds the field names; blank header cells and fully empty rows are
// skipped. An empty sheet name selects the first worksheet.
func ItemsFromXLSX(r io.Reader, sheet string) ([]any, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("doctpl: opening workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("doctpl: workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("doctpl: reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	items := make([]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		item := make(map[string]any, len(header))
		for i, cell := range row {
			if i >= len(header) || header[i] == "" || cell == "" {
				continue
			}
			item[header[i]] = cell
		}
		if len(item) > 0 {
			items = append(items, item)
		}
	}
	return items, nil
}
