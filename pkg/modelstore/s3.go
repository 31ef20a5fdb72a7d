package modelstore

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ajitpratap0/colprof/pkg/colerrors"
)

// S3Store reads artifacts from an S3 bucket prefix.
type S3Store struct {
	bucket     string
	prefix     string
	downloader *manager.Downloader
}

// NewS3Store creates an S3 store using the default AWS credential chain.
func NewS3Store(ctx context.Context, bucket, prefix string, opts Options) (*S3Store, error) {
	if bucket == "" {
		return nil, colerrors.New(colerrors.ErrorTypeConfig, "s3 model directory needs a bucket")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.S3Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.S3Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, colerrors.Wrap(err, colerrors.ErrorTypeStorage, "failed to load AWS configuration")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.S3Endpoint)
		}
		o.UsePathStyle = opts.S3UsePathStyle
	})

	return &S3Store{
		bucket:     bucket,
		prefix:     prefix,
		downloader: manager.NewDownloader(client),
	}, nil
}

// Read implements Store.
func (s *S3Store) Read(ctx context.Context, name string) ([]byte, error) {
	buf := manager.NewWriteAtBuffer(nil)
	key := objectKey(s.prefix, name)
	_, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, colerrors.Wrap(err, colerrors.ErrorTypeStorage, "failed to download artifact").
			WithDetail("bucket", s.bucket).
			WithDetail("key", key)
	}
	return buf.Bytes(), nil
}

// Location implements Store.
func (s *S3Store) Location(name string) string {
	return "s3://" + s.bucket + "/" + objectKey(s.prefix, name)
}
