package modelstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/colprof/pkg/colerrors"
)

func TestOpenLocalDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scaler.json"), []byte(`{}`), 0o600))

	for _, uri := range []string{dir, "file://" + dir} {
		store, err := Open(context.Background(), uri, Options{})
		require.NoError(t, err)
		require.IsType(t, &FileStore{}, store)

		data, err := store.Read(context.Background(), "scaler.json")
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
		assert.Equal(t, filepath.Join(dir, "scaler.json"), store.Location("scaler.json"))
	}
}

func TestFileStoreMissingArtifact(t *testing.T) {
	store := NewFileStore(t.TempDir())

	_, err := store.Read(context.Background(), "classifier.json")

	require.Error(t, err)
	assert.True(t, colerrors.IsType(err, colerrors.ErrorTypeFile))
}

func TestFileStoreHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileStore(t.TempDir()).Read(ctx, "scaler.json")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenRejectsBadDirectories(t *testing.T) {
	_, err := Open(context.Background(), "", Options{})
	assert.True(t, colerrors.IsType(err, colerrors.ErrorTypeConfig))

	_, err = Open(context.Background(), "ftp://host/models", Options{})
	assert.True(t, colerrors.IsType(err, colerrors.ErrorTypeConfig))

	_, err = Open(context.Background(), "s3:///models", Options{})
	assert.True(t, colerrors.IsType(err, colerrors.ErrorTypeConfig))
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "classifier.json", objectKey("", "classifier.json"))
	assert.Equal(t, "models/v2/classifier.json", objectKey("models/v2", "classifier.json"))
}
