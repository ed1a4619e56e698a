// Package report turns a diff sequence into something a person can read.
//
// # Formatting
//
// Format windows and truncates the records produced by core/reconcile:
//   - every cell is cut to MaxCellWidth characters, ending in "..."
//   - when there are more records than MaxRows, the first MaxRows/2 and the
//     last MaxRows-MaxRows/2-1 are kept around one elision row that states how
//     many rows were hidden
//   - NoTruncate shows everything unchanged
//
// An empty sequence produces a Display with Empty set, which renders as
// "No differences found.".
//
// # Rendering
//
// Render writes a Display as a go-pretty table, JSON, Markdown or CSV. The
// table renderer colors missing rows and changed values through a Styles value.
// Styles are plain values passed per call, so concurrent renders with different
// styles never interfere.
//
//	d := report.Format(result.Records, 20, 30, false)
//	err := report.Render(os.Stdout, d, "table", report.DefaultStyles())
//
// RenderColumns prints the column classification used by the columns command.
package report
