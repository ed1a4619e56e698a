package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"tablediff/core/reconcile"
	"tablediff/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleInput() Input {
	return Input{
		LeftPath:    "left.csv",
		RightPath:   "right.csv",
		LeftHeader:  []string{"id", "name", "old"},
		RightHeader: []string{"id", "name", "extra"},
		Records: []reconcile.DiffRecord{
			{Key: "1", Column: "name", File1: "a", File2: "b"},
			{Key: "1", Column: "old", File1: "x", File2: reconcile.ColumnAbsent},
			{Key: "1", Column: "extra", File1: reconcile.ColumnAbsent, File2: "y"},
			{Key: "2", Column: reconcile.MissingInRight, File1: "2,c,z", File2: ""},
			{Key: "3", Column: reconcile.MissingInLeft, File1: "", File2: "3,d,w"},
			{Key: "4", Column: reconcile.MissingInLeft, File1: "", File2: "4,e,v"},
		},
	}
}

func TestCountRecords(t *testing.T) {
	got := CountRecords(sampleInput().Records)
	assert.Equal(t, Counts{
		Total:             6,
		ColumnMismatches:  1,
		AbsentColumnDiffs: 2,
		OnlyInFile1:       1,
		OnlyInFile2:       2,
	}, got)
}

func TestCompareHeaders(t *testing.T) {
	got := CompareHeaders([]string{"id", "name", "old"}, []string{"extra", "id", "name"})
	assert.Equal(t, []HeaderStatus{
		{Column: "id", InFile1: true, InFile2: true, Status: StatusMatch},
		{Column: "name", InFile1: true, InFile2: true, Status: StatusMatch},
		{Column: "old", InFile1: true, InFile2: false, Status: StatusOnlyInFile1},
		{Column: "extra", InFile1: false, InFile2: true, Status: StatusOnlyInFile2},
	}, got)
}

func cell(t *testing.T, f *excelize.File, sheet, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, ref)
	require.NoError(t, err)
	return v
}

func TestBuild(t *testing.T) {
	f, err := Build(sampleInput())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetHeaders, SheetDifferences}, f.GetSheetList())

	t.Run("Summary", func(t *testing.T) {
		assert.Equal(t, "Comparison Summary", cell(t, f, SheetSummary, "A1"))
		assert.Equal(t, "left.csv", cell(t, f, SheetSummary, "B3"))
		assert.Equal(t, "right.csv", cell(t, f, SheetSummary, "B4"))
		assert.Equal(t, "6", cell(t, f, SheetSummary, "B6"))
		assert.Equal(t, "1", cell(t, f, SheetSummary, "B7"))
		assert.Equal(t, "2", cell(t, f, SheetSummary, "B8"))
		assert.Equal(t, "1", cell(t, f, SheetSummary, "B9"))
		assert.Equal(t, "2", cell(t, f, SheetSummary, "B10"))
	})

	t.Run("Headers", func(t *testing.T) {
		rows, err := f.GetRows(SheetHeaders)
		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"Column", "In File 1", "In File 2", "Status"},
			{"id", "Yes", "Yes", "Match"},
			{"name", "Yes", "Yes", "Match"},
			{"old", "Yes", "No", "OnlyInFile1"},
			{"extra", "No", "Yes", "OnlyInFile2"},
		}, rows)
	})

	t.Run("Differences", func(t *testing.T) {
		rows, err := f.GetRows(SheetDifferences)
		require.NoError(t, err)
		require.Len(t, rows, 7)
		assert.Equal(t, []string{"Key", "Column", "File 1", "File 2", "Kind"}, rows[0])
		assert.Equal(t, []string{"1", "name", "a", "b", "cell"}, rows[1])
		assert.Equal(t, []string{"2", reconcile.MissingInRight, "2,c,z", "", "missing_in_right"}, rows[4])
	})
}

func TestBuild_ColumnWidthCapped(t *testing.T) {
	in := sampleInput()
	in.Records = append(in.Records, reconcile.DiffRecord{
		Key: "9", Column: "name", File1: string(bytes.Repeat([]byte("x"), 500)), File2: "short",
	})

	f, err := Build(in)
	require.NoError(t, err)
	defer f.Close()

	width, err := f.GetColWidth(SheetDifferences, "C")
	require.NoError(t, err)
	assert.Equal(t, float64(maxColWidth), width)

	width, err = f.GetColWidth(SheetDifferences, "A")
	require.NoError(t, err)
	assert.Equal(t, float64(minColWidth), width)
}

func TestBuild_NoRecords(t *testing.T) {
	f, err := Build(Input{LeftHeader: []string{"id"}, RightHeader: []string{"id"}})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetDifferences)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "0", cell(t, f, SheetSummary, "B6"))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diff.xlsx")
	require.NoError(t, WriteFile(sampleInput(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "left.csv", cell(t, f, SheetSummary, "B3"))
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		client := new(mocks.Client)
		var uploaded []byte
		client.On("PutObject", mock.Anything, "reports", "out/diff.xlsx", mock.Anything, mock.AnythingOfType("int64"),
			mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == ContentType })).
			Run(func(args mock.Arguments) {
				data, err := io.ReadAll(args.Get(3).(io.Reader))
				require.NoError(t, err)
				uploaded = data
				assert.Equal(t, int64(len(data)), args.Get(4).(int64))
			}).
			Return(minio.UploadInfo{}, nil)

		require.NoError(t, Upload(ctx, client, "reports", "out/diff.xlsx", sampleInput()))
		client.AssertExpectations(t)

		f, err := excelize.OpenReader(bytes.NewReader(uploaded))
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "right.csv", cell(t, f, SheetSummary, "B4"))
	})

	t.Run("Put Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("PutObject", mock.Anything, "reports", "diff.xlsx", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("bucket not found"))

		err := Upload(ctx, client, "reports", "diff.xlsx", sampleInput())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "bucket not found")
	})
}
