package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"tablediff/core/export"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newCompareCmd()
	if len(args) > 0 && args[0] == "columns" {
		root = newColumnsCmd()
		args = args[1:]
	}
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeCSV(t, dir, "a.csv", "id,name,value\n1,x,10\n2,y,20\n")
	b := writeCSV(t, dir, "b.csv", "id,name,value\n1,x,11\n3,z,30\n")

	t.Run("Table", func(t *testing.T) {
		out, err := runCmd(t, "--file1", a, "--file2", b, "-k", "id", "--plain")
		require.NoError(t, err)
		assert.Contains(t, out, "[missing in file2]")
		assert.Contains(t, out, "2,y,20")
		assert.Contains(t, out, "Total differences: 3")
	})

	t.Run("JSON", func(t *testing.T) {
		out, err := runCmd(t, "--file1", a, "--file2", b, "-k", "id", "--format", "json")
		require.NoError(t, err)

		var got struct {
			Rows  []map[string]string `json:"rows"`
			Total int                 `json:"total"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, 3, got.Total)
		assert.Equal(t, "value", got.Rows[0]["column"])
	})

	t.Run("No Differences", func(t *testing.T) {
		out, err := runCmd(t, "--file1", a, "--file2", a, "-k", "id", "--plain")
		require.NoError(t, err)
		assert.Contains(t, out, "No differences found.")
	})

	t.Run("Max Rows", func(t *testing.T) {
		out, err := runCmd(t, "--file1", a, "--file2", b, "-k", "id", "--max-rows", "2", "--format", "csv")
		require.NoError(t, err)
		assert.Contains(t, out, "... (1 more rows) ...")
	})

	t.Run("Unknown Key", func(t *testing.T) {
		_, err := runCmd(t, "--file1", a, "--file2", b, "-k", "sku")
		assert.ErrorContains(t, err, "key column 'sku' not found")
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := runCmd(t, "--file1", a, "--file2", filepath.Join(dir, "nope.csv"), "-k", "id")
		assert.ErrorContains(t, err, "nope.csv")
	})

	t.Run("Missing Key Flag", func(t *testing.T) {
		_, err := runCmd(t, "--file1", a, "--file2", b)
		assert.ErrorContains(t, err, "required flag")
	})

	t.Run("Unknown Format", func(t *testing.T) {
		_, err := runCmd(t, "--file1", a, "--file2", b, "-k", "id", "--format", "yaml")
		assert.ErrorContains(t, err, "unknown output format")
	})

	t.Run("Workbook", func(t *testing.T) {
		path := filepath.Join(dir, "diff.xlsx")
		_, err := runCmd(t, "--file1", a, "--file2", b, "-k", "id", "--xlsx", path, "--plain")
		require.NoError(t, err)

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()
		total, err := f.GetCellValue(export.SheetSummary, "B6")
		require.NoError(t, err)
		assert.Equal(t, "3", total)
	})

	t.Run("Semicolon Delimiter", func(t *testing.T) {
		c := writeCSV(t, dir, "c.csv", "id;value\n1;10\n")
		d := writeCSV(t, dir, "d.csv", "id;value\n1;12\n")
		out, err := runCmd(t, "--file1", c, "--file2", d, "-k", "id", "--delimiter", ";", "--format", "csv")
		require.NoError(t, err)
		assert.Contains(t, out, "1,value,10,12")
	})
}

func TestColumnsCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeCSV(t, dir, "a.csv", "id,name,old\n1,x,y\n")
	b := writeCSV(t, dir, "b.csv", "id,name,extra\n1,x,z\n")

	out, err := runCmd(t, "columns", "--file1", a, "--file2", b, "-k", "id", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "column,class,file1,file2\n"+
		"id,key,yes,yes\n"+
		"name,comparable,yes,yes\n"+
		"old,left_only,yes,no\n"+
		"extra,right_only,no,yes\n", out)

	_, err = runCmd(t, "columns", "--file1", a, "--file2", b, "-k", "sku")
	assert.ErrorContains(t, err, "sku")
}
