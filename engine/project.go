/*
project.go - Detail-table projection and CSV export

PURPOSE:
  Turns classified records into the flat table the drill-down views and
  the CSV download show. Column order comes from DomainConfig.DisplayColumns;
  derived columns (identity, dates, days remaining, status) are rendered
  here so every surface shows the same text.

KEY CONCEPTS:
  - Dates render as DD-Mon-YYYY; a null date renders as an empty cell.
  - Negative days remaining render as the literal "Rolled Out".
  - A non-applicable classification renders as an empty status cell.

SEE ALSO:
  - rules.go: DomainConfig display column names
  - filter.go: Materialize produces the record slice projected here
*/
package engine

import (
	"encoding/csv"
	"io"
	"strconv"
)

// RolledOutText replaces a negative days-remaining value in every view.
const RolledOutText = "Rolled Out"

// Table is a fully rendered detail view: one header row plus one string
// row per record, in display order.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Project renders records into a Table using cfg.DisplayColumns.
func Project(cfg DomainConfig, records []Record) Table {
	t := Table{
		Columns: append([]string(nil), cfg.DisplayColumns...),
		Rows:    make([][]string, 0, len(records)),
	}
	for _, r := range records {
		row := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			row[i] = cell(cfg, r, col)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func cell(cfg DomainConfig, r Record, col string) string {
	switch col {
	case cfg.IdentityColumn:
		return r.Identity
	case cfg.DateField:
		return r.EventDate.Display()
	case cfg.SecondaryDateField:
		if cfg.SecondaryDateField == "" {
			break
		}
		return r.AltDate.Display()
	case cfg.DaysColumn:
		return daysCell(r)
	case cfg.StatusColumn:
		return statusCell(r)
	}
	return r.Get(col)
}

func daysCell(r Record) string {
	if !r.HasDays {
		return ""
	}
	if r.DaysUntil < 0 {
		return RolledOutText
	}
	return strconv.Itoa(r.DaysUntil)
}

func statusCell(r Record) string {
	if !r.Status.Applicable {
		return ""
	}
	return string(r.Status.Status)
}

// WriteCSV writes the table as UTF-8 CSV, header first.
func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
