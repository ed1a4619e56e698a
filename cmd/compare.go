package cmd

import (
	"context"
	"fmt"

	"tablediff/core/export"
	"tablediff/core/reconcile"
	"tablediff/core/report"
	"tablediff/core/source"
	"tablediff/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// compareOptions holds the flags of the compare command.
type compareOptions struct {
	file1        string
	file2        string
	keys         []string
	ignore       []string
	maxRows      int
	maxCellWidth int
	noTruncate   bool
	xlsx         string
	format       string
	delimiter    string
	plain        bool
}

func newCompareCmd() *cobra.Command {
	opts := &compareOptions{}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two tables and report their differences",
		Long: `Compare two tables keyed by one or more columns.

Reports every cell that differs between rows sharing a key, and every row
present in only one table. Columns found in only one table always differ.

Locations:
  path/to/file.csv      local file
  s3://bucket/key.csv   object storage (s3:///key.csv uses the configured bucket)
  sql://table_name      database table

Examples:
  # Compare by a single key
  tablediff compare --file1 old.csv --file2 new.csv -k id

  # Composite key, ignoring a timestamp column
  tablediff compare --file1 a.csv --file2 b.csv -k region -k id -i updated_at

  # Show everything and write a workbook
  tablediff compare --file1 a.csv --file2 b.csv -k id --no-truncate --xlsx diff.xlsx

  # Compare an export against the live table
  tablediff compare --file1 s3:///orders.csv --file2 sql://orders -k id`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.file1, "file1", "", "First table location")
	f.StringVar(&opts.file2, "file2", "", "Second table location")
	f.StringArrayVarP(&opts.keys, "key", "k", nil, "Key column (repeat for composite keys)")
	f.StringArrayVarP(&opts.ignore, "ignore", "i", nil, "Column to ignore when comparing (repeatable)")
	f.IntVar(&opts.maxRows, "max-rows", 20, "Maximum number of rows to display")
	f.IntVar(&opts.maxCellWidth, "max-cell-width", 30, "Maximum width for cell content")
	f.BoolVar(&opts.noTruncate, "no-truncate", false, "Show all differences without truncation")
	f.StringVar(&opts.xlsx, "xlsx", "", "Write an Excel workbook to this path (s3:// uploads it)")
	f.StringVar(&opts.format, "format", "", "Output format: table, json, markdown, csv")
	f.StringVar(&opts.delimiter, "delimiter", ",", `Field delimiter for delimited files ("\t" for tabs)`)
	f.BoolVar(&opts.plain, "plain", false, "Disable colors in table output")

	_ = cmd.MarkFlagRequired("file1")
	_ = cmd.MarkFlagRequired("file2")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

// applyDefaults fills display settings the user did not set from configuration.
func (o *compareOptions) applyDefaults(cmd *cobra.Command, cfg report.Config) {
	flags := cmd.Flags()
	if !flags.Changed("max-rows") {
		o.maxRows = cfg.MaxRows
	}
	if !flags.Changed("max-cell-width") {
		o.maxCellWidth = cfg.MaxCellWidth
	}
	if !flags.Changed("no-truncate") {
		o.noTruncate = cfg.NoTruncate
	}
	if !flags.Changed("format") {
		o.format = cfg.Format
	}
}

func (o *compareOptions) validate() error {
	if o.maxRows < 0 {
		return fmt.Errorf("--max-rows must not be negative")
	}
	if o.maxCellWidth < 0 {
		return fmt.Errorf("--max-cell-width must not be negative")
	}
	format, err := report.NormalizeFormat(o.format)
	if err != nil {
		return err
	}
	o.format = format
	return nil
}

func runCompare(cmd *cobra.Command, opts *compareOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()
	l := rt.logger

	opts.applyDefaults(cmd, rt.cfg.Report)
	if err := opts.validate(); err != nil {
		return err
	}

	comma, err := source.ParseDelimiter(opts.delimiter)
	if err != nil {
		return err
	}

	locations := []string{opts.file1, opts.file2}
	if storage.IsURI(opts.xlsx) {
		locations = append(locations, opts.xlsx)
	}
	resolver, b, err := rt.newResolver(comma, locations...)
	if err != nil {
		return err
	}

	l.Debug("Loading tables", zap.String("file1", opts.file1), zap.String("file2", opts.file2))
	left, right, err := source.LoadPair(ctx, resolver, opts.file1, opts.file2)
	if err != nil {
		return err
	}

	result, err := reconcile.Run(left, right, reconcile.Options{
		KeyColumns:    opts.keys,
		IgnoreColumns: opts.ignore,
	}, l)
	if err != nil {
		return err
	}

	styles := report.DefaultStyles()
	if opts.plain {
		styles = report.PlainStyles()
	}
	d := report.Format(result.Records, opts.maxRows, opts.maxCellWidth, opts.noTruncate)
	if err := report.Render(cmd.OutOrStdout(), d, opts.format, styles); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if opts.xlsx == "" {
		return nil
	}

	in := export.Input{
		LeftPath:    opts.file1,
		RightPath:   opts.file2,
		LeftHeader:  result.LeftHeader,
		RightHeader: result.RightHeader,
		Records:     result.Records,
	}
	return writeWorkbook(ctx, l, b, rt.cfg.Storage.Bucket, opts.xlsx, in)
}

func writeWorkbook(ctx context.Context, l *zap.Logger, b *backends, defaultBucket, target string, in export.Input) error {
	if !storage.IsURI(target) {
		if err := export.WriteFile(in, target); err != nil {
			return err
		}
		l.Info("Workbook written", zap.String("path", target))
		return nil
	}

	bucket, object, err := storage.ParseURI(target)
	if err != nil {
		return err
	}
	if bucket == "" {
		bucket = defaultBucket
	}
	if err := export.Upload(ctx, b.storage, bucket, object, in); err != nil {
		return err
	}
	l.Info("Workbook uploaded", zap.String("bucket", bucket), zap.String("object", object))
	return nil
}
