package modelstore

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/ajitpratap0/colprof/pkg/colerrors"
)

// GCSStore reads artifacts from a Google Cloud Storage bucket prefix.
type GCSStore struct {
	bucket *storage.BucketHandle
	name   string
	prefix string
}

// NewGCSStore creates a GCS store. Credentials come from opts or the
// environment's application default credentials.
func NewGCSStore(ctx context.Context, bucket, prefix string, opts Options) (*GCSStore, error) {
	if bucket == "" {
		return nil, colerrors.New(colerrors.ErrorTypeConfig, "gs model directory needs a bucket")
	}

	var clientOpts []option.ClientOption
	if opts.GCSCredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.GCSCredentialsFile))
	}

	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, colerrors.Wrap(err, colerrors.ErrorTypeStorage, "failed to create GCS client")
	}

	return &GCSStore{
		bucket: client.Bucket(bucket),
		name:   bucket,
		prefix: prefix,
	}, nil
}

// Read implements Store.
func (s *GCSStore) Read(ctx context.Context, name string) ([]byte, error) {
	key := objectKey(s.prefix, name)
	r, err := s.bucket.Object(key).NewReader(ctx)
	if err != nil {
		return nil, colerrors.Wrap(err, colerrors.ErrorTypeStorage, "failed to open artifact").
			WithDetail("bucket", s.name).
			WithDetail("object", key)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, colerrors.Wrap(err, colerrors.ErrorTypeStorage, "failed to read artifact").
			WithDetail("bucket", s.name).
			WithDetail("object", key)
	}
	return data, nil
}

// Location implements Store.
func (s *GCSStore) Location(name string) string {
	return "gs://" + s.name + "/" + objectKey(s.prefix, name)
}
