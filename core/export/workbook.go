package export

import (
	"bytes"
	"context"
	"fmt"
	"unicode/utf8"

	"tablediff/core/reconcile"
	"tablediff/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary     = "Summary"
	SheetHeaders     = "Headers"
	SheetDifferences = "Differences"

	StatusMatch       = "Match"
	StatusOnlyInFile1 = "OnlyInFile1"
	StatusOnlyInFile2 = "OnlyInFile2"

	// ContentType is the MIME type of uploaded workbooks.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	maxColWidth = 60
	minColWidth = 8
)

// Input is everything the workbook is built from.
type Input struct {
	LeftPath    string
	RightPath   string
	LeftHeader  []string
	RightHeader []string
	Records     []reconcile.DiffRecord
}

// Styles holds the style IDs registered in one workbook.
type Styles struct {
	Title  int
	Header int
	Label  int
}

func newStyles(f *excelize.File) (Styles, error) {
	title, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return Styles{}, err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"305496"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "1F3864", Style: 1},
		},
	})
	if err != nil {
		return Styles{}, err
	}
	label, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return Styles{}, err
	}
	return Styles{Title: title, Header: header, Label: label}, nil
}

// Counts are the figures shown on the Summary sheet.
type Counts struct {
	Total             int
	ColumnMismatches  int
	AbsentColumnDiffs int
	OnlyInFile1       int
	OnlyInFile2       int
}

// CountRecords groups records by category. Cell records where one side is
// ColumnAbsent are counted apart from comparable-column mismatches.
func CountRecords(records []reconcile.DiffRecord) Counts {
	c := Counts{Total: len(records)}
	for _, r := range records {
		switch r.Kind() {
		case reconcile.KindMissingInRight:
			c.OnlyInFile1++
		case reconcile.KindMissingInLeft:
			c.OnlyInFile2++
		default:
			if r.File1 == reconcile.ColumnAbsent || r.File2 == reconcile.ColumnAbsent {
				c.AbsentColumnDiffs++
			} else {
				c.ColumnMismatches++
			}
		}
	}
	return c
}

// HeaderStatus is the presence of one column name in both files.
type HeaderStatus struct {
	Column  string
	InFile1 bool
	InFile2 bool
	Status  string
}

// CompareHeaders lists every column name of either header with its status,
// file1 order first.
func CompareHeaders(left, right []string) []HeaderStatus {
	cs := reconcile.Classify(left, right, nil, nil)
	out := make([]HeaderStatus, 0, len(cs.Names))
	for _, name := range cs.Names {
		h := HeaderStatus{Column: name, InFile1: cs.InLeft(name), InFile2: cs.InRight(name)}
		switch {
		case h.InFile1 && h.InFile2:
			h.Status = StatusMatch
		case h.InFile1:
			h.Status = StatusOnlyInFile1
		default:
			h.Status = StatusOnlyInFile2
		}
		out = append(out, h)
	}
	return out
}

// Build creates the comparison workbook. The caller must Close it.
func Build(in Input) (*excelize.File, error) {
	f := excelize.NewFile()

	styles, err := newStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create styles: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		_ = f.Close()
		return nil, err
	}
	for _, name := range []string{SheetHeaders, SheetDifferences} {
		if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	writers := []struct {
		sheet string
		write func(*excelize.File, Input, Styles) error
	}{
		{SheetSummary, writeSummary},
		{SheetHeaders, writeHeaders},
		{SheetDifferences, writeDifferences},
	}
	for _, w := range writers {
		if err := w.write(f, in, styles); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to write %s sheet: %w", w.sheet, err)
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSummary(f *excelize.File, in Input, styles Styles) error {
	counts := CountRecords(in.Records)
	rows := [][]any{
		{"Comparison Summary"},
		{},
		{"File 1", in.LeftPath},
		{"File 2", in.RightPath},
		{},
		{"Total differences", counts.Total},
		{"Comparable-column mismatches", counts.ColumnMismatches},
		{"Absent-column differences", counts.AbsentColumnDiffs},
		{"Rows only in file1", counts.OnlyInFile1},
		{"Rows only in file2", counts.OnlyInFile2},
	}
	w := newSheetWriter(f, SheetSummary)
	for _, row := range rows {
		if err := w.append(row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "A1", styles.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "A3", fmt.Sprintf("A%d", len(rows)), styles.Label); err != nil {
		return err
	}
	return w.fitColumns()
}

func writeHeaders(f *excelize.File, in Input, styles Styles) error {
	w := newSheetWriter(f, SheetHeaders)
	if err := w.appendHeader([]string{"Column", "In File 1", "In File 2", "Status"}, styles); err != nil {
		return err
	}
	for _, h := range CompareHeaders(in.LeftHeader, in.RightHeader) {
		if err := w.append([]any{h.Column, yesNo(h.InFile1), yesNo(h.InFile2), h.Status}); err != nil {
			return err
		}
	}
	return w.finishTable()
}

func writeDifferences(f *excelize.File, in Input, styles Styles) error {
	w := newSheetWriter(f, SheetDifferences)
	if err := w.appendHeader([]string{"Key", "Column", "File 1", "File 2", "Kind"}, styles); err != nil {
		return err
	}
	for _, r := range in.Records {
		if err := w.append([]any{r.Key, r.Column, r.File1, r.File2, string(r.Kind())}); err != nil {
			return err
		}
	}
	return w.finishTable()
}

// sheetWriter appends rows to a sheet and tracks the widest value per column.
type sheetWriter struct {
	f         *excelize.File
	sheet     string
	row       int
	cols      int
	maxWidths map[int]int
}

func newSheetWriter(f *excelize.File, sheet string) *sheetWriter {
	return &sheetWriter{f: f, sheet: sheet, maxWidths: make(map[int]int)}
}

func (w *sheetWriter) append(values []any) error {
	w.row++
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(w.sheet, cell, &values); err != nil {
		return err
	}
	if len(values) > w.cols {
		w.cols = len(values)
	}
	for i, v := range values {
		if n := utf8.RuneCountInString(fmt.Sprint(v)); n > w.maxWidths[i] {
			w.maxWidths[i] = n
		}
	}
	return nil
}

func (w *sheetWriter) appendHeader(names []string, styles Styles) error {
	values := make([]any, len(names))
	for i, n := range names {
		values[i] = n
	}
	if err := w.append(values); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(names), w.row)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, "A1", last, styles.Header)
}

// finishTable freezes the header row, adds a filter and sizes the columns.
func (w *sheetWriter) finishTable() error {
	if err := w.f.SetPanes(w.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(w.cols, w.row)
	if err != nil {
		return err
	}
	if err := w.f.AutoFilter(w.sheet, "A1:"+last, nil); err != nil {
		return err
	}
	return w.fitColumns()
}

func (w *sheetWriter) fitColumns() error {
	for i := 0; i < w.cols; i++ {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := w.f.SetColWidth(w.sheet, name, name, columnWidth(w.maxWidths[i])); err != nil {
			return err
		}
	}
	return nil
}

func columnWidth(chars int) float64 {
	width := chars + 2
	if width < minColWidth {
		width = minColWidth
	}
	if width > maxColWidth {
		width = maxColWidth
	}
	return float64(width)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// WriteFile builds the workbook and saves it to path.
func WriteFile(in Input, path string) error {
	f, err := Build(in)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// Upload builds the workbook and stores it as bucket/object.
func Upload(ctx context.Context, client storage.Client, bucket, object string, in Input) error {
	f, err := Build(in)
	if err != nil {
		return err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}

	_, err = client.PutObject(ctx, bucket, object, bytes.NewReader(buf.Bytes()), int64(buf.Len()), minio.PutObjectOptions{
		ContentType: ContentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload workbook: %w", err)
	}
	return nil
}
