// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections from
// the application's configuration. SQL tables can then be compared like CSV files
// through the sql:// locations of core/source.
//
// # Connect
//
// Connect opens the configured driver and pings it with the configured timeout.
// Open wraps an existing dialector, which lets tests plug in go-sqlmock.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns in definition order. The source layer
// uses it to check that a table exists before reading its rows.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "orders")
package database
