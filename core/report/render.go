package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"tablediff/core/reconcile"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	FormatTable    = "table"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

// ErrUnknownFormat is returned by Render for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the supported output formats.
var Formats = []string{FormatTable, FormatJSON, FormatMarkdown, FormatCSV}

// Header is the column header of every tabular rendering.
var Header = []string{"KEY", "COLUMN", "FILE1", "FILE2"}

// Styles are the terminal styles used by the table renderer.
type Styles struct {
	Header  lipgloss.Style
	Missing lipgloss.Style
	Changed lipgloss.Style
	Muted   lipgloss.Style
	Summary lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
}

// DefaultStyles returns colored styles for interactive terminals.
func DefaultStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true),
		Missing: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Changed: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Summary: lipgloss.NewStyle().Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header:  plain,
		Missing: plain,
		Changed: plain,
		Muted:   plain,
		Summary: plain,
		Success: plain,
		Warning: plain,
	}
}

// NormalizeFormat maps aliases onto the canonical format names.
func NormalizeFormat(format string) (string, error) {
	switch strings.ToLower(format) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %s (expected one of %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
	}
}

// Render writes the display in the requested format.
func Render(w io.Writer, d Display, format string, styles Styles) error {
	f, err := NormalizeFormat(format)
	if err != nil {
		return err
	}

	switch f {
	case FormatJSON:
		return renderJSON(w, d)
	case FormatMarkdown:
		return renderMarkdown(w, d)
	case FormatCSV:
		return renderCSV(w, d)
	default:
		return renderTable(w, d, styles)
	}
}

func renderTable(w io.Writer, d Display, styles Styles) error {
	if d.Empty {
		_, _ = fmt.Fprintln(w, styles.Success.Render(NoDifferences))
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(Header))
	for i, h := range Header {
		headerRow[i] = styles.Header.Render(h)
	}
	t.AppendHeader(headerRow)

	for i, r := range d.Rows {
		t.AppendRow(styledRow(i, r, d, styles))
	}
	t.Render()

	_, _ = fmt.Fprintln(w)
	for _, line := range d.SummaryLines() {
		_, _ = fmt.Fprintln(w, styles.Summary.Render(line))
	}
	return nil
}

func styledRow(i int, r reconcile.DiffRecord, d Display, styles Styles) table.Row {
	if i == d.ElisionIndex {
		return table.Row{
			styles.Muted.Render(r.Key),
			styles.Muted.Render(r.Column),
			styles.Muted.Render(r.File1),
			styles.Muted.Render(r.File2),
		}
	}
	switch r.Kind() {
	case reconcile.KindMissingInRight, reconcile.KindMissingInLeft:
		return table.Row{r.Key, styles.Missing.Render(r.Column), r.File1, r.File2}
	default:
		return table.Row{r.Key, r.Column, styles.Changed.Render(r.File1), styles.Changed.Render(r.File2)}
	}
}

type jsonDisplay struct {
	Rows      []reconcile.DiffRecord `json:"rows"`
	Total     int                    `json:"total"`
	Hidden    int                    `json:"hidden"`
	Truncated bool                   `json:"truncated"`
}

func renderJSON(w io.Writer, d Display) error {
	rows := d.Rows
	if rows == nil {
		rows = []reconcile.DiffRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonDisplay{
		Rows:      rows,
		Total:     d.Total,
		Hidden:    d.Hidden,
		Truncated: d.Truncated,
	})
}

func renderMarkdown(w io.Writer, d Display) error {
	if d.Empty {
		_, _ = fmt.Fprintln(w, NoDifferences)
		return nil
	}

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(Header, " | "))
	seps := make([]string, len(Header))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, r := range d.Rows {
		values := []string{r.Key, r.Column, r.File1, r.File2}
		for i, v := range values {
			values[i] = escapeMarkdown(v)
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}

	_, _ = fmt.Fprintln(w)
	for _, line := range d.SummaryLines() {
		_, _ = fmt.Fprintln(w, line)
	}
	return nil
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func renderCSV(w io.Writer, d Display) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"key", "column", "file1", "file2"}); err != nil {
		return err
	}
	for _, r := range d.Rows {
		if err := cw.Write([]string{r.Key, r.Column, r.File1, r.File2}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
