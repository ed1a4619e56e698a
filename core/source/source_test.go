package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tablediff/core/storage/mocks"
	"tablediff/core/table"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	tables map[string]*table.Table
	err    error
}

func (s *stubSource) Load(ctx context.Context, location string) (*table.Table, error) {
	if s.err != nil {
		return nil, loadError(location, s.err)
	}
	t, ok := s.tables[location]
	if !ok {
		return nil, loadError(location, os.ErrNotExist)
	}
	return t, nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		comma      rune
		wantHeader []string
		wantRows   [][]string
		wantErr    bool
	}{
		{
			name:       "Basic",
			input:      "id,name\n1,a\n2,b\n",
			wantHeader: []string{"id", "name"},
			wantRows:   [][]string{{"1", "a"}, {"2", "b"}},
		},
		{
			name:       "Short Rows Kept",
			input:      "id,name,score\n1,a\n",
			wantHeader: []string{"id", "name", "score"},
			wantRows:   [][]string{{"1", "a"}},
		},
		{
			name:       "Strips BOM",
			input:      "\ufeffid,name\n1,a\n",
			wantHeader: []string{"id", "name"},
			wantRows:   [][]string{{"1", "a"}},
		},
		{
			name:       "Header Only",
			input:      "id,name\n",
			wantHeader: []string{"id", "name"},
			wantRows:   [][]string{},
		},
		{
			name:       "Custom Delimiter",
			input:      "id;name\n1;a,b\n",
			comma:      ';',
			wantHeader: []string{"id", "name"},
			wantRows:   [][]string{{"1", "a,b"}},
		},
		{
			name:       "Quoted Fields",
			input:      "id,note\n1,\"hello, world\"\n",
			wantHeader: []string{"id", "note"},
			wantRows:   [][]string{{"1", "hello, world"}},
		},
		{
			name:    "Empty Input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "Malformed Quote",
			input:   "id,name\n1,\"broken\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCSV(strings.NewReader(tt.input), "test.csv", tt.comma)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "test.csv", got.Name)
			assert.Equal(t, tt.wantHeader, got.Header)
			assert.Equal(t, tt.wantRows, got.Rows)
		})
	}
}

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		value   string
		want    rune
		wantErr bool
	}{
		{"", ',', false},
		{",", ',', false},
		{";", ';', false},
		{`\t`, '\t', false},
		{"tab", '\t', false},
		{"|", '|', false},
		{"::", 0, true},
		{`"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseDelimiter(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileSource_Load(t *testing.T) {
	path := writeFile(t, "a.csv", "id,value\n1,10\n")
	src := NewFileSource(0)

	t.Run("Plain Path", func(t *testing.T) {
		got, err := src.Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "value"}, got.Header)
		assert.Equal(t, [][]string{{"1", "10"}}, got.Rows)
	})

	t.Run("File Scheme", func(t *testing.T) {
		got, err := src.Load(context.Background(), "file://"+path)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Len())
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := src.Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
		var loadErr *TableLoadError
		require.ErrorAs(t, err, &loadErr)
		assert.True(t, errors.Is(err, os.ErrNotExist))
		assert.Contains(t, err.Error(), "nope.csv")
	})
}

func TestObjectSource_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Explicit Bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "other", "data/a.csv", mock.Anything).
			Return(io.NopCloser(strings.NewReader("id,v\n1,x\n")), nil)

		src := NewObjectSource(client, "datasets", 0)
		got, err := src.Load(ctx, "s3://other/data/a.csv")
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "v"}, got.Header)
		assert.Equal(t, "s3://other/data/a.csv", got.Name)
		client.AssertExpectations(t)
	})

	t.Run("Default Bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "datasets", "a.csv", minio.GetObjectOptions{}).
			Return(io.NopCloser(strings.NewReader("id\n1\n")), nil)

		src := NewObjectSource(client, "datasets", 0)
		got, err := src.Load(ctx, "s3:///a.csv")
		require.NoError(t, err)
		assert.Equal(t, 1, got.Len())
		client.AssertExpectations(t)
	})

	t.Run("Get Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "datasets", "a.csv", mock.Anything).
			Return(nil, errors.New("access denied"))

		src := NewObjectSource(client, "datasets", 0)
		_, err := src.Load(ctx, "s3:///a.csv")
		var loadErr *TableLoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "s3:///a.csv", loadErr.Location)
		assert.Contains(t, err.Error(), "access denied")
	})

	t.Run("No Bucket", func(t *testing.T) {
		src := NewObjectSource(new(mocks.Client), "", 0)
		_, err := src.Load(ctx, "s3:///a.csv")
		assert.Error(t, err)
	})

	t.Run("Invalid URI", func(t *testing.T) {
		src := NewObjectSource(new(mocks.Client), "datasets", 0)
		_, err := src.Load(ctx, "s3://datasets/")
		assert.Error(t, err)
	})
}

func TestScheme(t *testing.T) {
	assert.Equal(t, SchemeFile, Scheme("data/a.csv"))
	assert.Equal(t, SchemeFile, Scheme("file:///tmp/a.csv"))
	assert.Equal(t, SchemeObject, Scheme("s3://b/a.csv"))
	assert.Equal(t, SchemeSQL, Scheme("sql://orders"))
	assert.Equal(t, SchemeFile, Scheme("C:\\data\\a.csv"))
}

func TestResolver_Load(t *testing.T) {
	files := &stubSource{tables: map[string]*table.Table{
		"a.csv": table.New("a.csv", []string{"id"}, nil),
	}}
	objects := &stubSource{tables: map[string]*table.Table{
		"s3://b/a.csv": table.New("s3://b/a.csv", []string{"key"}, nil),
	}}

	r := NewResolver(files)
	r.Register(SchemeObject, objects)

	got, err := r.Load(context.Background(), "a.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, got.Header)

	got, err = r.Load(context.Background(), "s3://b/a.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"key"}, got.Header)

	_, err = r.Load(context.Background(), "sql://orders")
	var loadErr *TableLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), `no source configured for scheme "sql"`)
}

func TestLoadPair(t *testing.T) {
	src := &stubSource{tables: map[string]*table.Table{
		"a.csv": table.New("a.csv", []string{"id"}, [][]string{{"1"}}),
		"b.csv": table.New("b.csv", []string{"id"}, [][]string{{"2"}}),
	}}

	t.Run("Both Load", func(t *testing.T) {
		left, right, err := LoadPair(context.Background(), src, "a.csv", "b.csv")
		require.NoError(t, err)
		assert.Equal(t, "a.csv", left.Name)
		assert.Equal(t, "b.csv", right.Name)
	})

	t.Run("One Fails", func(t *testing.T) {
		left, right, err := LoadPair(context.Background(), src, "a.csv", "missing.csv")
		var loadErr *TableLoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "missing.csv", loadErr.Location)
		assert.Nil(t, left)
		assert.Nil(t, right)
	})
}
