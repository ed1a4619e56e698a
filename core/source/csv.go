package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"tablediff/core/table"
)

const utf8BOM = "\ufeff"

// FileSource reads delimited text files from the local filesystem.
type FileSource struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

// NewFileSource creates a file source using the given delimiter.
func NewFileSource(comma rune) *FileSource {
	return &FileSource{Comma: comma}
}

// Load implements Source. A "file://" prefix is accepted and stripped.
func (s *FileSource) Load(ctx context.Context, location string) (*table.Table, error) {
	path := strings.TrimPrefix(location, "file://")

	f, err := os.Open(path)
	if err != nil {
		return nil, loadError(location, err)
	}
	defer f.Close()

	t, err := ParseCSV(f, location, s.Comma)
	if err != nil {
		return nil, loadError(location, err)
	}
	return t, nil
}

// ParseCSV reads a header row followed by data rows.
// Rows may have any number of fields; short rows are padded at lookup time.
func ParseCSV(r io.Reader, name string, comma rune) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	if comma != 0 {
		reader.Comma = comma
	}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty input: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if rows == nil {
		rows = [][]string{}
	}

	return table.New(name, header, rows), nil
}

// ParseDelimiter turns a flag value into a single delimiter rune.
// "\t" and "tab" are accepted for tab-separated input.
func ParseDelimiter(value string) (rune, error) {
	switch value {
	case "":
		return ',', nil
	case `\t`, "tab":
		return '\t', nil
	}
	runes := []rune(value)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", value)
	}
	if runes[0] == '"' || runes[0] == '\r' || runes[0] == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", value)
	}
	return runes[0], nil
}
