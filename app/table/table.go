package table

// Table is an in-memory CSV document: one header row and any number of data rows.
// Rows may be shorter or longer than the header.
type Table struct {
	Header []string
	Rows   [][]string
}

func New(header ...string) *Table {
	return &Table{
		Header: header,
		Rows:   make([][]string, 0),
	}
}

// Index returns the position of the first header equal to column, or -1.
func (t *Table) Index(column string) int {
	if t == nil {
		return -1
	}
	for i, name := range t.Header {
		if name == column {
			return i
		}
	}
	return -1
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *Table) Append(values ...string) {
	t.Rows = append(t.Rows, values)
}

// Column returns every value of the named column, using "" for cells
// missing from short rows. It returns nil when the column does not exist.
func (t *Table) Column(column string) []string {
	idx := t.Index(column)
	if idx < 0 {
		return nil
	}

	values := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		values = append(values, Cell(row, idx))
	}
	return values
}

// Cell returns row[idx] or "" when the row has no such cell.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
