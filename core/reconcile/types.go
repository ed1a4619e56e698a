package reconcile

const (
	// KeySeparator joins the values of the key columns into one composite key.
	KeySeparator = "|"

	// MissingInRight is the column sentinel for a row found only in file1.
	MissingInRight = "[missing in file2]"

	// MissingInLeft is the column sentinel for a row found only in file2.
	MissingInLeft = "[missing in file1]"

	// ColumnAbsent fills the side of a cell whose table lacks the column.
	ColumnAbsent = "[column absent]"

	// PreviewWidth is the maximum length, in characters, of a one-sided row preview.
	PreviewWidth = 50
)

// DiffRecord is one reported divergence between the two tables.
// The Column field tells the record shapes apart: a real column name for a
// cell mismatch, or one of the MissingInRight / MissingInLeft sentinels.
type DiffRecord struct {
	// Key is the composite key of the row.
	Key string `json:"key"`

	// Column is the differing column, or a missing-row sentinel.
	Column string `json:"column"`

	// File1 is the left-hand value (or the row preview for MissingInRight).
	File1 string `json:"file1"`

	// File2 is the right-hand value (or the row preview for MissingInLeft).
	File2 string `json:"file2"`
}

// DiffKind classifies a DiffRecord by shape.
type DiffKind string

const (
	// KindCell is a value mismatch in a column.
	KindCell DiffKind = "cell"
	// KindMissingInRight is a row present only in file1.
	KindMissingInRight DiffKind = "missing_in_right"
	// KindMissingInLeft is a row present only in file2.
	KindMissingInLeft DiffKind = "missing_in_left"
)

// Kind derives the record shape from its Column field.
func (d DiffRecord) Kind() DiffKind {
	switch d.Column {
	case MissingInRight:
		return KindMissingInRight
	case MissingInLeft:
		return KindMissingInLeft
	default:
		return KindCell
	}
}

// Options controls which columns identify rows and which are skipped.
type Options struct {
	// KeyColumns are the column names forming the composite key, in order.
	KeyColumns []string `json:"key"`

	// IgnoreColumns are excluded from comparison.
	IgnoreColumns []string `json:"ignore"`
}

// Summary provides aggregate counts for one reconciliation pass.
type Summary struct {
	// Total is the number of diff records.
	Total int `json:"total"`

	// CellMismatches counts records for differing cells of shared keys.
	CellMismatches int `json:"cell_mismatches"`

	// MissingInRight counts rows present only in file1.
	MissingInRight int `json:"missing_in_right"`

	// MissingInLeft counts rows present only in file2.
	MissingInLeft int `json:"missing_in_left"`

	// LeftRows and RightRows count physical data rows read from each table.
	LeftRows  int `json:"left_rows"`
	RightRows int `json:"right_rows"`

	// LeftKeys and RightKeys count distinct composite keys per table.
	LeftKeys  int `json:"left_keys"`
	RightKeys int `json:"right_keys"`

	// SharedKeys counts keys present in both tables.
	SharedKeys int `json:"shared_keys"`

	// LeftCollisions and RightCollisions count rows overwritten by a later
	// row with the same composite key.
	LeftCollisions  int `json:"left_collisions"`
	RightCollisions int `json:"right_collisions"`

	// HeaderMismatch is set when the two header sequences differ.
	HeaderMismatch bool `json:"header_mismatch"`
}

// Result is the output of a full reconciliation run.
type Result struct {
	// Records holds every divergence, ordered by key then column.
	Records []DiffRecord `json:"records"`

	// Columns is the classification of the column-name union.
	Columns *ColumnSet `json:"columns"`

	// LeftHeader and RightHeader are the headers of both tables.
	LeftHeader  []string `json:"left_header"`
	RightHeader []string `json:"right_header"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}
