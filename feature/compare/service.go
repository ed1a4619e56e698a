package compare

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tablediff/core/export"
	"tablediff/core/reconcile"
	"tablediff/core/report"
	"tablediff/core/source"
	"tablediff/core/storage"
	"tablediff/core/table"

	"go.uber.org/zap"
)

// ErrInvalidRequest marks requests rejected before any table is loaded.
var ErrInvalidRequest = errors.New("invalid request")

// Request is the body of a comparison request.
type Request struct {
	File1  string   `json:"file1"`
	File2  string   `json:"file2"`
	Key    []string `json:"key"`
	Ignore []string `json:"ignore"`

	// Display settings; nil means the configured default.
	MaxRows      *int  `json:"max_rows"`
	MaxCellWidth *int  `json:"max_cell_width"`
	NoTruncate   *bool `json:"no_truncate"`

	// Export is an optional s3:// location for the workbook.
	Export string `json:"export"`
}

// Response is the result of a comparison.
type Response struct {
	Summary reconcile.Summary      `json:"summary"`
	Records []reconcile.DiffRecord `json:"records"`
	Display report.Display         `json:"display"`
	Columns []report.ColumnRow     `json:"columns"`
	Export  string                 `json:"export,omitempty"`
}

// Service runs comparisons for the HTTP API.
type Service struct {
	source   source.Source
	client   storage.Client
	bucket   string
	defaults report.Config
	logger   *zap.Logger
}

// NewService creates a new compare service.
func NewService(src source.Source, client storage.Client, bucket string, defaults report.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:   src,
		client:   client,
		bucket:   bucket,
		defaults: defaults,
		logger:   logger,
	}
}

func (r Request) validate() error {
	if strings.TrimSpace(r.File1) == "" || strings.TrimSpace(r.File2) == "" {
		return fmt.Errorf("%w: file1 and file2 are required", ErrInvalidRequest)
	}
	if len(r.Key) == 0 {
		return fmt.Errorf("%w: at least one key column is required", ErrInvalidRequest)
	}
	if r.MaxRows != nil && *r.MaxRows < 0 {
		return fmt.Errorf("%w: max_rows must not be negative", ErrInvalidRequest)
	}
	if r.MaxCellWidth != nil && *r.MaxCellWidth < 0 {
		return fmt.Errorf("%w: max_cell_width must not be negative", ErrInvalidRequest)
	}
	if r.Export != "" && !storage.IsURI(r.Export) {
		return fmt.Errorf("%w: export must be an s3:// location", ErrInvalidRequest)
	}
	return nil
}

func (s *Service) displaySettings(r Request) (maxRows, maxCellWidth int, noTruncate bool) {
	maxRows, maxCellWidth, noTruncate = s.defaults.MaxRows, s.defaults.MaxCellWidth, s.defaults.NoTruncate
	if r.MaxRows != nil {
		maxRows = *r.MaxRows
	}
	if r.MaxCellWidth != nil {
		maxCellWidth = *r.MaxCellWidth
	}
	if r.NoTruncate != nil {
		noTruncate = *r.NoTruncate
	}
	return maxRows, maxCellWidth, noTruncate
}

func (s *Service) load(ctx context.Context, r Request) (*table.Table, *table.Table, error) {
	return source.LoadPair(ctx, s.source, r.File1, r.File2)
}

// Compare loads both tables and reconciles them.
func (s *Service) Compare(ctx context.Context, r Request) (*Response, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	left, right, err := s.load(ctx, r)
	if err != nil {
		return nil, err
	}

	result, err := reconcile.Run(left, right, reconcile.Options{KeyColumns: r.Key, IgnoreColumns: r.Ignore}, s.logger)
	if err != nil {
		return nil, err
	}

	maxRows, maxCellWidth, noTruncate := s.displaySettings(r)
	resp := &Response{
		Summary: result.Summary,
		Records: result.Records,
		Display: report.Format(result.Records, maxRows, maxCellWidth, noTruncate),
		Columns: report.ColumnRows(result.Columns),
	}

	if r.Export != "" {
		if err := s.upload(ctx, r, left, right, result); err != nil {
			return nil, err
		}
		resp.Export = r.Export
	}

	return resp, nil
}

func (s *Service) upload(ctx context.Context, r Request, left, right *table.Table, result *reconcile.Result) error {
	if s.client == nil {
		return errors.New("object storage is not configured")
	}
	bucket, object, err := storage.ParseURI(r.Export)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if bucket == "" {
		bucket = s.bucket
	}

	in := export.Input{
		LeftPath:    r.File1,
		RightPath:   r.File2,
		LeftHeader:  left.Header,
		RightHeader: right.Header,
		Records:     result.Records,
	}
	if err := export.Upload(ctx, s.client, bucket, object, in); err != nil {
		return err
	}
	s.logger.Info("Workbook uploaded", zap.String("bucket", bucket), zap.String("object", object))
	return nil
}

// Columns loads both tables and classifies their columns without comparing rows.
func (s *Service) Columns(ctx context.Context, r Request) ([]report.ColumnRow, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	left, right, err := s.load(ctx, r)
	if err != nil {
		return nil, err
	}
	for _, t := range []*table.Table{left, right} {
		for _, k := range r.Key {
			if !t.HasColumn(k) {
				return nil, &reconcile.UnknownKeyColumnError{Column: k, Table: t.Name}
			}
		}
	}

	cs := reconcile.Classify(left.Header, right.Header, r.Key, r.Ignore)
	return report.ColumnRows(cs), nil
}
