package report

// Config holds the default display settings for diff reports.
type Config struct {
	// MaxRows is the maximum number of diff rows shown before eliding the middle.
	MaxRows int `mapstructure:"max_rows" default:"20"`
	// MaxCellWidth is the maximum number of characters shown per cell.
	MaxCellWidth int `mapstructure:"max_cell_width" default:"30"`
	// NoTruncate shows every row and full cell values.
	NoTruncate bool `mapstructure:"no_truncate" default:"false"`
	// Format is the output format (table, json, markdown, csv).
	Format string `mapstructure:"format" default:"table"`
}
