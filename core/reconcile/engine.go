package reconcile

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"tablediff/core/table"

	"go.uber.org/zap"
)

// Run performs a full reconciliation of two loaded tables.
// It indexes both tables, warns on header or duplicate-key issues, and
// returns every divergence with aggregate counts.
func Run(left, right *table.Table, opts Options, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	leftIndex, err := BuildIndex(left, opts.KeyColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to index file1: %w", err)
	}
	rightIndex, err := BuildIndex(right, opts.KeyColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to index file2: %w", err)
	}

	headerMismatch := !table.SameHeader(left.Header, right.Header)
	if headerMismatch {
		logger.Warn("Header mismatch between files, comparing columns by name",
			zap.Strings("file1_header", left.Header),
			zap.Strings("file2_header", right.Header),
		)
	}
	warnCollisions(logger, "file1", leftIndex)
	warnCollisions(logger, "file2", rightIndex)

	columns := Classify(left.Header, right.Header, opts.KeyColumns, opts.IgnoreColumns)
	records := reconcileIndices(leftIndex, rightIndex, columns)

	summary := Summarize(records)
	summary.LeftRows = left.Len()
	summary.RightRows = right.Len()
	summary.LeftKeys = leftIndex.Len()
	summary.RightKeys = rightIndex.Len()
	summary.SharedKeys = summary.LeftKeys - summary.MissingInRight
	summary.LeftCollisions = leftIndex.Collisions
	summary.RightCollisions = rightIndex.Collisions
	summary.HeaderMismatch = headerMismatch

	logger.Debug("Reconciliation finished",
		zap.Int("differences", summary.Total),
		zap.Int("shared_keys", summary.SharedKeys),
	)

	return &Result{
		Records:     records,
		Columns:     columns,
		LeftHeader:  left.Header,
		RightHeader: right.Header,
		Summary:     summary,
	}, nil
}

// Reconcile compares two indices and returns the diff records.
// Keys are visited once each in lexicographic order; within a key, columns
// follow the union order of Classify.
func Reconcile(left, right *Index, opts Options) []DiffRecord {
	columns := Classify(left.Header, right.Header, opts.KeyColumns, opts.IgnoreColumns)
	return reconcileIndices(left, right, columns)
}

func reconcileIndices(left, right *Index, columns *ColumnSet) []DiffRecord {
	keys := sortedUnion(left, right)
	comparable := columns.Comparable()

	records := make([]DiffRecord, 0)
	for _, key := range keys {
		row1, inLeft := left.Rows[key]
		row2, inRight := right.Rows[key]

		switch {
		case inLeft && inRight:
			for _, column := range comparable {
				v1, v2, different := columns.Resolve(column, row1, row2)
				if !different {
					continue
				}
				records = append(records, DiffRecord{
					Key:    key,
					Column: column,
					File1:  v1,
					File2:  v2,
				})
			}
		case inLeft:
			records = append(records, DiffRecord{
				Key:    key,
				Column: MissingInRight,
				File1:  Preview(row1),
			})
		case inRight:
			records = append(records, DiffRecord{
				Key:    key,
				Column: MissingInLeft,
				File2:  Preview(row2),
			})
		}
	}

	return records
}

// sortedUnion returns every key found in either index, sorted.
func sortedUnion(left, right *Index) []string {
	union := make(map[string]struct{}, len(left.Rows)+len(right.Rows))
	for key := range left.Rows {
		union[key] = struct{}{}
	}
	for key := range right.Rows {
		union[key] = struct{}{}
	}

	keys := make([]string, 0, len(union))
	for key := range union {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Preview renders a one-sided row as its fields joined with commas, cut to
// PreviewWidth characters with a trailing "..." when longer.
func Preview(fields []string) string {
	joined := strings.Join(fields, ",")
	if utf8.RuneCountInString(joined) <= PreviewWidth {
		return joined
	}
	runes := []rune(joined)
	return string(runes[:PreviewWidth-3]) + "..."
}

// Summarize counts records by kind.
func Summarize(records []DiffRecord) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		switch r.Kind() {
		case KindMissingInRight:
			s.MissingInRight++
		case KindMissingInLeft:
			s.MissingInLeft++
		default:
			s.CellMismatches++
		}
	}
	return s
}

func warnCollisions(logger *zap.Logger, side string, idx *Index) {
	if idx.Collisions == 0 {
		return
	}
	sample := idx.CollidedKeys
	if len(sample) > 5 {
		sample = sample[:5]
	}
	logger.Warn("Duplicate keys found, keeping the last row for each",
		zap.String("file", side),
		zap.String("table", idx.Name),
		zap.Int("overwritten_rows", idx.Collisions),
		zap.Int("keys", len(idx.CollidedKeys)),
		zap.Strings("sample", sample),
	)
}
