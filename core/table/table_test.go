package table_test

import (
	"testing"

	"tablediff/core/table"

	"github.com/stretchr/testify/assert"
)

func TestTable_ColumnIndex(t *testing.T) {
	tbl := table.New("a.csv", []string{"id", "name", "id"}, nil)

	tests := []struct {
		name   string
		column string
		want   int
		found  bool
	}{
		{"First column", "id", 0, true},
		{"Second column", "name", 1, true},
		{"Missing column", "extra", -1, false},
		{"Case sensitive", "ID", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tbl.ColumnIndex(tt.column)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.found, ok)
		})
	}
}

func TestField(t *testing.T) {
	row := []string{"1", "x"}

	assert.Equal(t, "1", table.Field(row, 0))
	assert.Equal(t, "x", table.Field(row, 1))
	assert.Equal(t, "", table.Field(row, 2), "short rows pad with empty string")
	assert.Equal(t, "", table.Field(row, -1))
	assert.Equal(t, "", table.Field(nil, 0))
}

func TestSameHeader(t *testing.T) {
	assert.True(t, table.SameHeader([]string{"id", "name"}, []string{"id", "name"}))
	assert.False(t, table.SameHeader([]string{"id", "name"}, []string{"name", "id"}))
	assert.False(t, table.SameHeader([]string{"id"}, []string{"id", "name"}))
	assert.True(t, table.SameHeader(nil, []string{}))
}
