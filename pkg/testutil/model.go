package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/colprof/pkg/arff"
	"github.com/ajitpratap0/colprof/pkg/compression"
	"github.com/ajitpratap0/colprof/pkg/features"
	"github.com/ajitpratap0/colprof/pkg/json"
)

// WriteModel writes a scaler and a multinomial classifier for vectors with
// the given number of type families into dir. The classifier always prefers
// classes[0]. Artifacts are compressed when ext is a codec extension such as
// ".zst"; pass "" for plain JSON.
func WriteModel(t testing.TB, dir string, families int, ext string, classes ...string) arff.Files {
	t.Helper()
	require.GreaterOrEqual(t, len(classes), 2, "a model needs two classes")

	width := families + features.NumShapeFeatures
	coef := make([][]float64, len(classes))
	intercept := make([]float64, len(classes))
	for i := range classes {
		coef[i] = make([]float64, width)
	}
	intercept[0] = 5

	files := arff.Files{
		Scaler:     "scaler.json" + ext,
		Classifier: "classifier.json" + ext,
	}
	writeJSON(t, filepath.Join(dir, files.Scaler), arff.Scaler{
		Center: []float64{0, 0},
		Scale:  []float64{1, 1},
	})
	writeJSON(t, filepath.Join(dir, files.Classifier), arff.LogisticRegression{
		Classes:    classes,
		Coef:       coef,
		Intercept:  intercept,
		MultiClass: arff.MultiClassMultinomial,
	})
	return files
}

func writeJSON(t testing.TB, path string, v interface{}) {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	if algo := compression.AlgorithmFromPath(path); algo != compression.None {
		comp, err := compression.NewCompressor(&compression.Config{Algorithm: algo, Level: compression.Default})
		require.NoError(t, err)
		data, err = comp.Compress(data)
		require.NoError(t, err, fmt.Sprintf("compress %s", path))
	}

	require.NoError(t, os.WriteFile(path, data, 0o600))
}
