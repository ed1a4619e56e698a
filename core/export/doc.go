// Package export writes comparison results to an Excel workbook.
//
// The workbook has three sheets:
//   - Summary: both file paths and the number of differences per category
//   - Headers: every column name of either file with Match, OnlyInFile1 or OnlyInFile2
//   - Differences: one row per diff record
//
// Header rows are frozen and filterable, and column widths follow the content up
// to a cap. The package only consumes reconcile output; nothing in core/reconcile
// depends on it.
//
// # Usage
//
//	in := export.Input{
//	    LeftPath: "a.csv", RightPath: "b.csv",
//	    LeftHeader: left.Header, RightHeader: right.Header,
//	    Records: result.Records,
//	}
//	err := export.WriteFile(in, "diff.xlsx")
//	err = export.Upload(ctx, client, "reports", "diff.xlsx", in)
package export
