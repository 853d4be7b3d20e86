package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readExcelRows reads the first sheet of a phyphox Excel export. The
// first row is the column header and is skipped; the column order is
// fixed (time, Bx, By, Bz, absolute field) so the header text itself is
// not interpreted.
func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("ingest: %s has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("ingest: read sheet %q of %s: %w", sheet, path, err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("ingest: sheet %q of %s has no data rows", sheet, path)
	}
	return rows[1:], nil
}
