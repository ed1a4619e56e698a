package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"tablediff/core/reconcile"

	"github.com/jedib0t/go-pretty/v6/table"
)

// ColumnRow describes one column of the header union.
type ColumnRow struct {
	Name    string                `json:"name"`
	Class   reconcile.ColumnClass `json:"class"`
	InFile1 bool                  `json:"in_file1"`
	InFile2 bool                  `json:"in_file2"`
}

// ColumnRows lists the classification of cs in union order.
func ColumnRows(cs *reconcile.ColumnSet) []ColumnRow {
	rows := make([]ColumnRow, 0, len(cs.Names))
	for _, name := range cs.Names {
		rows = append(rows, ColumnRow{
			Name:    name,
			Class:   cs.Class(name),
			InFile1: cs.InLeft(name),
			InFile2: cs.InRight(name),
		})
	}
	return rows
}

// RenderColumns writes the column classification in the requested format.
func RenderColumns(w io.Writer, cs *reconcile.ColumnSet, format string, styles Styles) error {
	f, err := NormalizeFormat(format)
	if err != nil {
		return err
	}
	rows := ColumnRows(cs)

	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case FormatMarkdown:
		_, _ = fmt.Fprintln(w, "| COLUMN | CLASS | FILE1 | FILE2 |")
		_, _ = fmt.Fprintln(w, "| --- | --- | --- | --- |")
		for _, r := range rows {
			_, _ = fmt.Fprintf(w, "| %s | %s | %s | %s |\n", escapeMarkdown(r.Name), r.Class, yesNo(r.InFile1), yesNo(r.InFile2))
		}
		return nil
	case FormatCSV:
		_, _ = fmt.Fprintln(w, "column,class,file1,file2")
		for _, r := range rows {
			_, _ = fmt.Fprintf(w, "%s,%s,%s,%s\n", escapeCSV(r.Name), r.Class, yesNo(r.InFile1), yesNo(r.InFile2))
		}
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{
		styles.Header.Render("COLUMN"),
		styles.Header.Render("CLASS"),
		styles.Header.Render("FILE1"),
		styles.Header.Render("FILE2"),
	})
	for _, r := range rows {
		class := r.Class.String()
		switch r.Class {
		case reconcile.ClassLeftOnly, reconcile.ClassRightOnly:
			class = styles.Warning.Render(class)
		case reconcile.ClassKey, reconcile.ClassIgnored:
			class = styles.Muted.Render(class)
		}
		t.AppendRow(table.Row{r.Name, class, yesNo(r.InFile1), yesNo(r.InFile2)})
	}
	t.Render()
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
