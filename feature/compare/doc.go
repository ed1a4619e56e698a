// Package compare exposes table comparison over HTTP.
//
// # Endpoints
//
//   - POST /compare: loads both tables, reconciles them and returns the summary,
//     every diff record, the windowed display and the column classification.
//     An optional "export" s3:// location receives the Excel workbook.
//   - POST /compare/columns: returns the column classification only.
//
// Request body:
//
//	{
//	    "file1": "s3:///orders-2024-01.csv",
//	    "file2": "sql://orders",
//	    "key": ["id"],
//	    "ignore": ["updated_at"],
//	    "max_rows": 20,
//	    "max_cell_width": 30,
//	    "no_truncate": false
//	}
//
// # Errors
//
//   - 400: malformed body, missing fields or an unknown key column
//   - 422: a table could not be loaded or parsed
//   - 500: anything else, such as a failed workbook upload
package compare
