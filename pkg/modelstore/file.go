package modelstore

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ajitpratap0/colprof/pkg/colerrors"
)

// FileStore reads artifacts from a local directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Read implements Store.
func (s *FileStore) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := filepath.Join(s.dir, name)
	data, err := os.ReadFile(p) //nolint:gosec // G304: model directory is operator supplied
	if err != nil {
		return nil, colerrors.Wrap(err, colerrors.ErrorTypeFile, "failed to read artifact").
			WithDetail("path", p)
	}
	return data, nil
}

// Location implements Store.
func (s *FileStore) Location(name string) string {
	return filepath.Join(s.dir, name)
}
