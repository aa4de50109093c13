package loader

// Row is one record keyed by column name. Absent and empty cells both read
// as the empty string; callers that care about the distinction use HasColumn.
type Row map[string]string

// Table is a column-ordered set of rows, the common shape every source
// adapter produces regardless of its wire format.
type Table struct {
	Columns []string
	Rows    []Row
}

func (t Table) Len() int { return len(t.Rows) }

func (t Table) Empty() bool { return len(t.Rows) == 0 }

func (t Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// Filter returns a table containing only the rows for which keep returns
// true. Column order is preserved.
func (t Table) Filter(keep func(Row) bool) Table {
	out := Table{Columns: t.Columns}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
