/*
Package source loads raw board rows from Excel workbooks, with a seeded
mock generator as the development and fallback source.

PURPOSE:
  Loaders stay dumb on purpose: they turn a sheet into raw key/value rows
  keyed by header text and nothing more. Alias resolution, date parsing and
  status vocabulary all happen in the engine's normalizer, so a workbook
  with renamed columns degrades inside the rules, not inside the loader.

SEE ALSO:
  - engine/normalize.go: where raw rows become records
  - hub/hub.go: Loader contract consumed by Refresh
*/
package source

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/warp/config-ops-hub/engine"
)

// LoadExcel reads one sheet of a workbook into raw rows. The named sheet is
// preferred; when the workbook does not carry it, the first sheet serves
// instead. The first row is the header; rows with every cell blank are
// skipped, rows with fewer cells than headers are padded with blanks.
func LoadExcel(path, sheet string) ([]engine.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	name := pickSheet(f, sheet)
	if name == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	cells, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	if len(cells) == 0 {
		return nil, nil
	}

	headers := make([]string, len(cells[0]))
	for i, h := range cells[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []engine.RawRow
	for _, line := range cells[1:] {
		row := make(engine.RawRow, len(headers))
		blank := true
		for i, h := range headers {
			if h == "" {
				continue
			}
			var v string
			if i < len(line) {
				v = strings.TrimSpace(line[i])
			}
			row[h] = v
			if v != "" {
				blank = false
			}
		}
		if !blank {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func pickSheet(f *excelize.File, preferred string) string {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ""
	}
	for _, s := range sheets {
		if preferred != "" && strings.EqualFold(s, preferred) {
			return s
		}
	}
	return sheets[0]
}
