package reconcile

import "tablediff/core/table"

// ColumnClass is the role of a column name in a reconciliation.
type ColumnClass int

const (
	// ClassComparable columns exist in both tables and are compared by value.
	ClassComparable ColumnClass = iota
	// ClassKey columns identify rows and are never compared.
	ClassKey
	// ClassIgnored columns were excluded by the caller.
	ClassIgnored
	// ClassLeftOnly columns exist only in file1.
	ClassLeftOnly
	// ClassRightOnly columns exist only in file2.
	ClassRightOnly
)

func (c ColumnClass) String() string {
	switch c {
	case ClassKey:
		return "key"
	case ClassIgnored:
		return "ignored"
	case ClassComparable:
		return "comparable"
	case ClassLeftOnly:
		return "left_only"
	case ClassRightOnly:
		return "right_only"
	default:
		return "unknown"
	}
}

// MarshalText encodes the class by name in JSON output.
func (c ColumnClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// HeaderIndex maps a column name to its first position in a header.
type HeaderIndex map[string]int

// NewHeaderIndex builds a name lookup for header. For duplicate names the
// first position wins.
func NewHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, name := range header {
		if _, exists := idx[name]; !exists {
			idx[name] = i
		}
	}
	return idx
}

// ColumnSet is the classification of the union of both headers.
type ColumnSet struct {
	// Names is the column-name union: file1 header order, then the
	// file2-only names in file2 header order.
	Names []string `json:"names"`

	// Classes maps each name in Names to its role.
	Classes map[string]ColumnClass `json:"classes"`

	left  HeaderIndex
	right HeaderIndex
}

// Classify assigns a role to every column name found in either header.
// Key takes precedence over Ignored, which takes precedence over presence.
func Classify(headers1, headers2, keyNames, ignoreNames []string) *ColumnSet {
	keys := toSet(keyNames)
	ignored := toSet(ignoreNames)

	cs := &ColumnSet{
		Classes: make(map[string]ColumnClass, len(headers1)+len(headers2)),
		left:    NewHeaderIndex(headers1),
		right:   NewHeaderIndex(headers2),
	}

	add := func(name string) {
		if _, done := cs.Classes[name]; done {
			return
		}
		cs.Names = append(cs.Names, name)
		cs.Classes[name] = cs.classify(name, keys, ignored)
	}
	for _, name := range headers1 {
		add(name)
	}
	for _, name := range headers2 {
		add(name)
	}

	return cs
}

func (cs *ColumnSet) classify(name string, keys, ignored map[string]struct{}) ColumnClass {
	if _, ok := keys[name]; ok {
		return ClassKey
	}
	if _, ok := ignored[name]; ok {
		return ClassIgnored
	}
	_, inLeft := cs.left[name]
	_, inRight := cs.right[name]
	switch {
	case inLeft && inRight:
		return ClassComparable
	case inLeft:
		return ClassLeftOnly
	default:
		return ClassRightOnly
	}
}

// Class returns the role of name. Names outside the union report
// ClassIgnored so they are never compared.
func (cs *ColumnSet) Class(name string) ColumnClass {
	if c, ok := cs.Classes[name]; ok {
		return c
	}
	return ClassIgnored
}

// Comparable returns the names visited during cell comparison, in union order.
func (cs *ColumnSet) Comparable() []string {
	var names []string
	for _, name := range cs.Names {
		switch cs.Classes[name] {
		case ClassKey, ClassIgnored:
			continue
		}
		names = append(names, name)
	}
	return names
}

// Count returns how many names have class c.
func (cs *ColumnSet) Count(c ColumnClass) int {
	n := 0
	for _, class := range cs.Classes {
		if class == c {
			n++
		}
	}
	return n
}

// InLeft reports whether file1's header has name.
func (cs *ColumnSet) InLeft(name string) bool {
	_, ok := cs.left[name]
	return ok
}

// InRight reports whether file2's header has name.
func (cs *ColumnSet) InRight(name string) bool {
	_, ok := cs.right[name]
	return ok
}

// Resolve compares one column of a shared key using the set's header indices.
func (cs *ColumnSet) Resolve(column string, row1, row2 []string) (string, string, bool) {
	return ResolveCell(column, cs.Class(column), row1, row2, cs.left, cs.right)
}

// ResolveCell returns the display values of a column for a pair of rows and
// whether they differ. Values are compared raw, without trimming.
// A column missing from one table always differs; that side shows ColumnAbsent.
func ResolveCell(column string, class ColumnClass, row1, row2 []string, idx1, idx2 HeaderIndex) (left, right string, different bool) {
	switch class {
	case ClassKey, ClassIgnored:
		return "", "", false
	case ClassLeftOnly:
		return fieldAt(row1, idx1, column), ColumnAbsent, true
	case ClassRightOnly:
		return ColumnAbsent, fieldAt(row2, idx2, column), true
	default:
		left = fieldAt(row1, idx1, column)
		right = fieldAt(row2, idx2, column)
		return left, right, left != right
	}
}

func fieldAt(row []string, idx HeaderIndex, column string) string {
	pos, ok := idx[column]
	if !ok {
		return ""
	}
	return table.Field(row, pos)
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
