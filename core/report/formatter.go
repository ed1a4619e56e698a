package report

import (
	"fmt"
	"unicode/utf8"

	"tablediff/core/reconcile"
)

const (
	// NoDifferences is printed instead of a table when nothing differs.
	NoDifferences = "No differences found."

	// Ellipsis marks truncated cells and fills the elision row.
	Ellipsis = "..."
)

// Display is the windowed, truncated view of a diff sequence.
type Display struct {
	// Rows are the records to show, including the elision row when present.
	Rows []reconcile.DiffRecord `json:"rows"`

	// Total is the number of records before windowing.
	Total int `json:"total"`

	// Hidden is the count stated by the elision row.
	Hidden int `json:"hidden"`

	// Truncated is set when the middle of the sequence was elided.
	Truncated bool `json:"truncated"`

	// Empty is set when there were no records at all.
	Empty bool `json:"empty"`

	// ElisionIndex is the position of the elision row in Rows, or -1.
	ElisionIndex int `json:"elision_index"`
}

// Format builds the display for a diff sequence.
//
// With noTruncate the records are shown as they are. Otherwise each cell is
// cut to maxCellWidth characters and, when there are more than maxRows
// records, the first maxRows/2 and the last maxRows-maxRows/2-1 records are
// kept around one elision row.
func Format(records []reconcile.DiffRecord, maxRows, maxCellWidth int, noTruncate bool) Display {
	total := len(records)
	d := Display{Total: total, ElisionIndex: -1}

	if total == 0 {
		d.Empty = true
		d.Rows = []reconcile.DiffRecord{}
		return d
	}

	if noTruncate {
		d.Rows = append([]reconcile.DiffRecord(nil), records...)
		return d
	}

	if maxRows < 0 {
		maxRows = 0
	}

	if total <= maxRows {
		d.Rows = make([]reconcile.DiffRecord, 0, total)
		for _, r := range records {
			d.Rows = append(d.Rows, truncateRecord(r, maxCellWidth))
		}
		return d
	}

	head := maxRows / 2
	tail := maxRows - head - 1
	if tail < 0 {
		tail = 0
	}
	if rest := total - head; tail > rest {
		tail = rest
	}

	d.Truncated = true
	d.Hidden = total - maxRows
	d.Rows = make([]reconcile.DiffRecord, 0, head+1+tail)
	for _, r := range records[:head] {
		d.Rows = append(d.Rows, truncateRecord(r, maxCellWidth))
	}
	d.ElisionIndex = len(d.Rows)
	d.Rows = append(d.Rows, reconcile.DiffRecord{
		Key:    Ellipsis,
		Column: fmt.Sprintf("... (%d more rows) ...", d.Hidden),
		File1:  Ellipsis,
		File2:  Ellipsis,
	})
	for _, r := range records[total-tail:] {
		d.Rows = append(d.Rows, truncateRecord(r, maxCellWidth))
	}
	return d
}

func truncateRecord(r reconcile.DiffRecord, width int) reconcile.DiffRecord {
	return reconcile.DiffRecord{
		Key:    TruncateCell(r.Key, width),
		Column: TruncateCell(r.Column, width),
		File1:  TruncateCell(r.File1, width),
		File2:  TruncateCell(r.File2, width),
	}
}

// TruncateCell cuts s to at most width characters, ending in "..." when cut.
// Widths below 3 keep only the ellipsis.
func TruncateCell(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	cut := width - len(Ellipsis)
	if cut < 0 {
		cut = 0
	}
	return string([]rune(s)[:cut]) + Ellipsis
}

// Shown returns the number of real records displayed, excluding the elision row.
func (d Display) Shown() int {
	if d.ElisionIndex >= 0 {
		return len(d.Rows) - 1
	}
	return len(d.Rows)
}

// SummaryLines returns the footer printed under the table.
func (d Display) SummaryLines() []string {
	if d.Empty {
		return nil
	}
	if d.Truncated {
		return []string{
			fmt.Sprintf("Summary: %d total differences found", d.Total),
			fmt.Sprintf("Showing %d rows (use --max-rows to adjust or --no-truncate to show all)", d.Total-d.Hidden),
		}
	}
	return []string{fmt.Sprintf("Total differences: %d", d.Total)}
}
