package reconcile

import (
	"strings"

	"tablediff/core/table"
)

// Index maps composite keys to rows for one table.
// It holds at most one row per distinct key: a later row with the same key
// replaces the earlier one.
type Index struct {
	// Name is the source table name.
	Name string

	// Header is the header of the table the index was built from.
	Header []string

	// Rows maps composite key to the last row read under that key.
	Rows map[string][]string

	// Collisions counts rows that replaced an earlier row with the same key.
	Collisions int

	// CollidedKeys lists each overwritten key once, in first-collision order.
	CollidedKeys []string
}

// BuildIndex indexes the rows of t by the composite key of keyColumns.
// An unknown key column is fatal and no partial index is returned.
func BuildIndex(t *table.Table, keyColumns []string) (*Index, error) {
	if len(keyColumns) == 0 {
		return nil, ErrNoKeyColumns
	}

	positions := make([]int, len(keyColumns))
	for i, name := range keyColumns {
		pos, ok := t.ColumnIndex(name)
		if !ok {
			return nil, &UnknownKeyColumnError{Column: name, Table: t.Name}
		}
		positions[i] = pos
	}

	idx := &Index{
		Name:   t.Name,
		Header: t.Header,
		Rows:   make(map[string][]string, len(t.Rows)),
	}

	seen := make(map[string]struct{})
	for _, row := range t.Rows {
		key := compositeKey(row, positions)
		if _, exists := idx.Rows[key]; exists {
			idx.Collisions++
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				idx.CollidedKeys = append(idx.CollidedKeys, key)
			}
		}
		idx.Rows[key] = row
	}

	return idx, nil
}

// Len returns the number of distinct keys.
func (i *Index) Len() int {
	return len(i.Rows)
}

// Get returns the row stored under key.
func (i *Index) Get(key string) ([]string, bool) {
	row, ok := i.Rows[key]
	return row, ok
}

func compositeKey(row []string, positions []int) string {
	if len(positions) == 1 {
		return table.Field(row, positions[0])
	}
	parts := make([]string, len(positions))
	for i, pos := range positions {
		parts[i] = table.Field(row, pos)
	}
	return strings.Join(parts, KeySeparator)
}
