package source

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"tablediff/core/database"
	"tablediff/core/table"
	"tablediff/core/utils"

	"gorm.io/gorm"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLSource reads whole database tables as string tables.
type SQLSource struct {
	db *gorm.DB
}

// NewSQLSource creates a SQL source on an open connection.
func NewSQLSource(db *gorm.DB) *SQLSource {
	return &SQLSource{db: db}
}

// Load implements Source for "sql://table_name" locations.
// NULL values become empty strings.
func (s *SQLSource) Load(ctx context.Context, location string) (*table.Table, error) {
	name := strings.TrimPrefix(location, SchemeSQL+"://")
	if !tableNamePattern.MatchString(name) {
		return nil, loadError(location, fmt.Errorf("invalid table name %q", name))
	}

	columns, err := database.GetTableColumns(s.db.WithContext(ctx), name)
	if err != nil {
		return nil, loadError(location, err)
	}
	if len(columns) == 0 {
		return nil, loadError(location, fmt.Errorf("table %s does not exist or has no columns", name))
	}

	rows, err := s.db.WithContext(ctx).Table(name).Rows()
	if err != nil {
		return nil, loadError(location, fmt.Errorf("failed to query table: %w", err))
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, loadError(location, fmt.Errorf("failed to read result columns: %w", err))
	}

	data := make([][]string, 0)
	values := make([]any, len(header))
	ptrs := make([]any, len(header))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, loadError(location, fmt.Errorf("failed to scan row: %w", err))
		}
		row := make([]string, len(header))
		for i, v := range values {
			if v != nil {
				row[i] = utils.ToString(v)
			}
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, loadError(location, err)
	}

	return table.New(location, header, data), nil
}
