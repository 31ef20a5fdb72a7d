// Package modelstore reads classifier artifacts from a model directory. The
// directory is addressed by URI:
//
//	./models, /opt/colprof/models, file:///opt/models   local filesystem
//	s3://bucket/prefix                                   Amazon S3
//	gs://bucket/prefix                                   Google Cloud Storage
//
// Stores only read; artifacts are produced by training tooling outside this
// module.
package modelstore

import (
	"context"
	"net/url"
	"strings"

	"github.com/ajitpratap0/colprof/pkg/colerrors"
)

// Store reads named artifacts from a model directory.
type Store interface {
	// Read returns the full contents of the artifact called name.
	Read(ctx context.Context, name string) ([]byte, error)
	// Location returns a human readable location of name, for logs.
	Location(name string) string
}

// Options carries the object store settings used by remote stores.
type Options struct {
	S3Region           string
	S3Endpoint         string
	S3UsePathStyle     bool
	GCSCredentialsFile string
}

// Open returns the store for dir.
func Open(ctx context.Context, dir string, opts Options) (Store, error) {
	if dir == "" {
		return nil, colerrors.New(colerrors.ErrorTypeConfig, "model directory is required")
	}

	if !strings.Contains(dir, "://") {
		return NewFileStore(dir), nil
	}

	u, err := url.Parse(dir)
	if err != nil {
		return nil, colerrors.Wrap(err, colerrors.ErrorTypeConfig, "invalid model directory").
			WithDetail("dir", dir)
	}

	prefix := strings.Trim(u.Path, "/")
	switch u.Scheme {
	case "file":
		return NewFileStore(u.Path), nil
	case "s3":
		return NewS3Store(ctx, u.Host, prefix, opts)
	case "gs":
		return NewGCSStore(ctx, u.Host, prefix, opts)
	default:
		return nil, colerrors.Newf(colerrors.ErrorTypeConfig, "unsupported model directory scheme %q", u.Scheme).
			WithDetail("dir", dir)
	}
}

func objectKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
