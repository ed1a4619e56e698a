package source

import (
	"context"
	"fmt"

	"tablediff/core/storage"
	"tablediff/core/table"

	"github.com/minio/minio-go/v7"
)

// ObjectSource reads delimited text objects from S3-compatible storage.
type ObjectSource struct {
	client storage.Client
	bucket string
	comma  rune
}

// NewObjectSource creates an object source. bucket is used for "s3:///key" locations.
func NewObjectSource(client storage.Client, bucket string, comma rune) *ObjectSource {
	return &ObjectSource{client: client, bucket: bucket, comma: comma}
}

// Load implements Source.
func (s *ObjectSource) Load(ctx context.Context, location string) (*table.Table, error) {
	bucket, object, err := storage.ParseURI(location)
	if err != nil {
		return nil, loadError(location, err)
	}
	if bucket == "" {
		bucket = s.bucket
	}
	if bucket == "" {
		return nil, loadError(location, fmt.Errorf("no bucket in location and no default bucket configured"))
	}

	obj, err := s.client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, loadError(location, fmt.Errorf("failed to get object: %w", err))
	}
	defer obj.Close()

	t, err := ParseCSV(obj, location, s.comma)
	if err != nil {
		return nil, loadError(location, err)
	}
	return t, nil
}
