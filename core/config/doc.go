// Package config provides configuration management for tablediff.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Report: default max rows, cell width, truncation and output format
//   - Server: HTTP server settings (port, API key, table cache TTL)
//   - Database: MySQL or SQLite connection details for sql:// tables
//   - Storage: S3/MinIO credentials and bucket settings for s3:// objects
//   - Log: Logging level and format
//
// Nested keys map to upper-case environment variables joined by underscores,
// e.g. REPORT_MAX_ROWS or STORAGE_BUCKET.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Report.MaxRows)
package config
