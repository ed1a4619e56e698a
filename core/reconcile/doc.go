// Package reconcile compares two tables keyed by one or more columns and
// reports every cell-level and row-level divergence.
//
// # Architecture
//
// The engine has three parts:
//
// 1. Row Indexer (BuildIndex): maps each row to a composite key built from the
// key columns joined with KeySeparator. When two rows share a key the later row
// replaces the earlier one; the overwrite count is kept on the Index.
//
// 2. Column Reconciler (Classify, ResolveCell): takes the union of both headers
// and gives each column name a role: key, ignored, comparable, left-only or
// right-only. Cells are looked up by name, not position, so tables whose headers
// differ in order or content still line up.
//
// 3. Diff Engine (Reconcile, Run): walks the sorted union of keys. A key in both
// tables emits one record per differing column; a key in one table emits one
// MissingInRight or MissingInLeft record carrying a preview of the row.
//
// # Determinism
//
// Keys are visited in lexicographic order and columns in union order (file1
// header, then file2-only names), so the same inputs always produce the same
// record sequence.
//
// # Errors
//
// An unknown key column is fatal (UnknownKeyColumnError). A header mismatch and
// duplicate keys are logged as warnings and surfaced in Summary.
//
// # Usage Example
//
//	result, err := reconcile.Run(left, right, reconcile.Options{
//	    KeyColumns:    []string{"id"},
//	    IgnoreColumns: []string{"updated_at"},
//	}, logger)
//	if err != nil {
//	    return err
//	}
//	for _, d := range result.Records {
//	    fmt.Println(d.Key, d.Column, d.File1, d.File2)
//	}
package reconcile
