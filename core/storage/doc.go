// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so datasets can be read from, and workbooks
// written to, AWS S3 or self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - GetObject: Retrieves a dataset as a stream.
//   - PutObject: Uploads content (with size and options).
//
// # Locations
//
// Objects are addressed as s3://bucket/path/to/object. The form s3:///object
// uses the configured default bucket. ParseURI splits such a location.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	bucket, object, err := storage.ParseURI("s3://datasets/exports/orders.csv")
//	rc, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
package storage
