// Package source loads tables from the places datasets live.
//
// Every loader implements the Source interface and returns a fully resident
// table.Table. Failures are always reported as *TableLoadError, which wraps the
// underlying cause.
//
// # Locations
//
//   - path/to/file.csv or file://path: local delimited file (FileSource)
//   - s3://bucket/key or s3:///key: object in S3-compatible storage (ObjectSource),
//     the empty bucket form uses the configured bucket
//   - sql://table_name: a whole database table (SQLSource)
//
// The Resolver picks the source by scheme. Schemes without a registered source
// fail with a TableLoadError, so the CLI works without storage or database
// configured as long as only files are compared.
//
// # Parsing
//
// ParseCSV uses encoding/csv with a variable number of fields per record. A UTF-8
// byte order mark on the first header cell is removed. Rows shorter than the
// header are kept as they are; the reconciliation treats missing fields as empty.
//
// # Loading Pairs
//
// LoadPair reads both sides concurrently with an errgroup. The first failure
// cancels the context of the other load.
//
// # Cache
//
// The server wraps its resolver in a Cache. Tables are kept per location for a
// TTL and concurrent requests for the same location share one load through
// singleflight:
//
//	cache := source.NewCache(resolver, 5*time.Minute)
//	left, right, err := source.LoadPair(ctx, cache, "s3:///a.csv", "s3:///b.csv")
package source
