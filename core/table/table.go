package table

// Table is a fully loaded delimited dataset: one header row plus data rows.
// Rows may be shorter than the header; missing trailing fields read as "".
type Table struct {
	// Name identifies where the table came from (path, object key, table name).
	Name string `json:"name"`

	// Header holds the column names in file order.
	// Names are expected to be unique; lookups return the first match.
	Header []string `json:"header"`

	// Rows holds the data rows in input order.
	Rows [][]string `json:"rows"`
}

// New creates a table with the given header and rows.
func New(name string, header []string, rows [][]string) *Table {
	return &Table{Name: name, Header: header, Rows: rows}
}

// ColumnIndex returns the position of the first header cell equal to name.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return -1, false
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.ColumnIndex(name)
	return ok
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Field returns row[i], or "" when the row is too short to have it.
func Field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// SameHeader reports whether two headers are identical, position by position.
func SameHeader(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
