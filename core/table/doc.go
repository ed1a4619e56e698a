// Package table defines the in-memory representation of a loaded dataset.
//
// A Table is a header row plus data rows of string fields. It is produced by
// the sources in core/source and consumed by the reconcile engine. Short rows
// are kept as read; Field pads them with empty strings on access.
package table
