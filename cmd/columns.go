package cmd

import (
	"context"

	"tablediff/core/reconcile"
	"tablediff/core/report"
	"tablediff/core/source"

	"github.com/spf13/cobra"
)

type columnsOptions struct {
	file1     string
	file2     string
	keys      []string
	ignore    []string
	format    string
	delimiter string
	plain     bool
}

func newColumnsCmd() *cobra.Command {
	opts := &columnsOptions{}

	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Show how the columns of two tables will be compared",
		Long: `Classify every column of both tables without comparing any rows.

Each column is reported as key, ignored, comparable, left_only or right_only.

Example:
  tablediff columns --file1 a.csv --file2 b.csv -k id -i updated_at`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumns(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.file1, "file1", "", "First table location")
	f.StringVar(&opts.file2, "file2", "", "Second table location")
	f.StringArrayVarP(&opts.keys, "key", "k", nil, "Key column (repeatable)")
	f.StringArrayVarP(&opts.ignore, "ignore", "i", nil, "Column to ignore (repeatable)")
	f.StringVar(&opts.format, "format", "table", "Output format: table, json, markdown, csv")
	f.StringVar(&opts.delimiter, "delimiter", ",", "Field delimiter for delimited files")
	f.BoolVar(&opts.plain, "plain", false, "Disable colors in table output")

	_ = cmd.MarkFlagRequired("file1")
	_ = cmd.MarkFlagRequired("file2")

	return cmd
}

func runColumns(cmd *cobra.Command, opts *columnsOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := report.NormalizeFormat(opts.format); err != nil {
		return err
	}
	comma, err := source.ParseDelimiter(opts.delimiter)
	if err != nil {
		return err
	}

	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	resolver, _, err := rt.newResolver(comma, opts.file1, opts.file2)
	if err != nil {
		return err
	}
	left, right, err := source.LoadPair(ctx, resolver, opts.file1, opts.file2)
	if err != nil {
		return err
	}

	for _, k := range opts.keys {
		if !left.HasColumn(k) {
			return &reconcile.UnknownKeyColumnError{Column: k, Table: left.Name}
		}
		if !right.HasColumn(k) {
			return &reconcile.UnknownKeyColumnError{Column: k, Table: right.Name}
		}
	}

	styles := report.DefaultStyles()
	if opts.plain {
		styles = report.PlainStyles()
	}
	cs := reconcile.Classify(left.Header, right.Header, opts.keys, opts.ignore)
	return report.RenderColumns(cmd.OutOrStdout(), cs, opts.format, styles)
}
