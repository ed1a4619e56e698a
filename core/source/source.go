package source

import (
	"context"
	"fmt"
	"strings"

	"tablediff/core/table"

	"golang.org/x/sync/errgroup"
)

const (
	SchemeFile   = "file"
	SchemeObject = "s3"
	SchemeSQL    = "sql"
)

// Source loads a complete table from a location.
type Source interface {
	Load(ctx context.Context, location string) (*table.Table, error)
}

// TableLoadError reports that a table could not be read or parsed.
type TableLoadError struct {
	Location string
	Err      error
}

func (e *TableLoadError) Error() string {
	return fmt.Sprintf("failed to load table %s: %v", e.Location, e.Err)
}

func (e *TableLoadError) Unwrap() error {
	return e.Err
}

func loadError(location string, err error) error {
	return &TableLoadError{Location: location, Err: err}
}

// Scheme returns the scheme of a location. Plain paths are files.
func Scheme(location string) string {
	scheme, _, ok := strings.Cut(location, "://")
	if !ok || scheme == "" {
		return SchemeFile
	}
	return scheme
}

// Resolver dispatches a location to the Source registered for its scheme.
type Resolver struct {
	sources map[string]Source
}

// NewResolver creates a resolver that reads plain paths with files.
func NewResolver(files Source) *Resolver {
	r := &Resolver{sources: make(map[string]Source)}
	if files != nil {
		r.Register(SchemeFile, files)
	}
	return r
}

// Register binds a source to a scheme, replacing any previous binding.
func (r *Resolver) Register(scheme string, src Source) {
	r.sources[scheme] = src
}

// Load implements Source.
func (r *Resolver) Load(ctx context.Context, location string) (*table.Table, error) {
	scheme := Scheme(location)
	src, ok := r.sources[scheme]
	if !ok {
		return nil, loadError(location, fmt.Errorf("no source configured for scheme %q", scheme))
	}
	return src.Load(ctx, location)
}

// LoadPair loads both tables concurrently. The first failure cancels the other load.
func LoadPair(ctx context.Context, src Source, left, right string) (*table.Table, *table.Table, error) {
	var leftTable, rightTable *table.Table

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := src.Load(gctx, left)
		leftTable = t
		return err
	})
	g.Go(func() error {
		t, err := src.Load(gctx, right)
		rightTable = t
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return leftTable, rightTable, nil
}
