package arff

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ajitpratap0/colprof/pkg/colerrors"
	"github.com/ajitpratap0/colprof/pkg/compression"
	"github.com/ajitpratap0/colprof/pkg/json"
	"github.com/ajitpratap0/colprof/pkg/modelstore"
)

// Files names the artifacts inside a model directory. A codec extension
// (".zst", ".gz", ".lz4", ".sz", ".s2") selects decompression.
type Files struct {
	Scaler     string
	Classifier string
}

// DefaultFiles returns the conventional artifact names.
func DefaultFiles() Files {
	return Files{
		Scaler:     "scaler.json",
		Classifier: "classifier.json",
	}
}

// Load reads, decodes and validates both artifacts. Any failure is an
// ErrorTypeModelLoad error.
func Load(ctx context.Context, store modelstore.Store, files Files, logger *zap.Logger) (*Model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	var scaler Scaler
	if err := readArtifact(ctx, store, files.Scaler, &scaler); err != nil {
		return nil, err
	}

	classifier := &LogisticRegression{}
	if err := readArtifact(ctx, store, files.Classifier, classifier); err != nil {
		return nil, err
	}

	model, err := NewModel(scaler, classifier)
	if err != nil {
		return nil, colerrors.Wrap(err, colerrors.ErrorTypeModelLoad, "invalid model artifacts").
			WithDetail("classifier", store.Location(files.Classifier))
	}

	logger.Info("loaded arff model",
		zap.String("classifier", store.Location(files.Classifier)),
		zap.String("scaler", store.Location(files.Scaler)),
		zap.Strings("classes", model.Classes()),
		zap.Int("width", model.Width()),
		zap.String("multi_class", model.MultiClass()),
		zap.Duration("duration", time.Since(start)))

	return model, nil
}

func readArtifact(ctx context.Context, store modelstore.Store, name string, v interface{}) error {
	if name == "" {
		return colerrors.New(colerrors.ErrorTypeModelLoad, "artifact name is required")
	}

	data, err := store.Read(ctx, name)
	if err != nil {
		return colerrors.Wrap(err, colerrors.ErrorTypeModelLoad, "failed to read artifact").
			WithDetail("artifact", store.Location(name))
	}

	data, err = compression.DecompressPath(name, data)
	if err != nil {
		return colerrors.Wrap(err, colerrors.ErrorTypeModelLoad, "failed to decompress artifact").
			WithDetail("artifact", store.Location(name))
	}

	if err := json.UnmarshalStrict(data, v); err != nil {
		return colerrors.Wrap(err, colerrors.ErrorTypeModelLoad, "failed to decode artifact").
			WithDetail("artifact", store.Location(name))
	}
	return nil
}
