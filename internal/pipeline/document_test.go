package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/colprof/pkg/colerrors"
	"github.com/ajitpratap0/colprof/pkg/column"
	"github.com/ajitpratap0/colprof/pkg/compression"
	"github.com/ajitpratap0/colprof/pkg/json"
)

const documentJSON = `{
  "columns": [
    {
      "name": "age",
      "values": [1, 2, 3, "NA", "???"],
      "type_posterior": {"integer": 0.9, "string": 0.1},
      "row_posteriors": {
        "integer": [[0.9, 0.05, 0.05], [0.9, 0.05, 0.05], [0.9, 0.05, 0.05], [0.1, 0.1, 0.8], [0.1, 0.8, 0.1]],
        "string": [[1, 0, 0], [1, 0, 0], [1, 0, 0], [1, 0, 0], [1, 0, 0]]
      },
      "override_type": "string"
    }
  ]
}`

func TestReadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "columns.json")
	require.NoError(t, os.WriteFile(path, []byte(documentJSON), 0o600))

	doc, err := ReadDocument(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, doc.Columns, 1)

	c, ok := doc.Find("age")
	require.True(t, ok)
	assert.Equal(t, "string", c.OverrideType)
	assert.Len(t, c.Values, 5)
	assert.Equal(t, [3]float64{0.1, 0.8, 0.1}, c.RowPosteriors["integer"][4])

	_, ok = doc.Find("height")
	assert.False(t, ok)
}

func TestReadDocumentDecodesNumbersAsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "columns.json")
	require.NoError(t, os.WriteFile(path, []byte(documentJSON), 0o600))

	doc, err := ReadDocument(context.Background(), path)
	require.NoError(t, err)

	col, err := column.New(doc.Columns[0].Input(), nominalClassifier())
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "???", "NA"}, col.UniqueValues())
}

func TestReadDocumentKeepsLargeIntegersDistinct(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"columns": [{
  "name": "id",
  "values": [12345678901234567890, 12345678901234567891],
  "type_posterior": {"integer": 1.0},
  "row_posteriors": {"integer": [[1, 0, 0], [1, 0, 0]]}
}]}`), 0o600))

	doc, err := ReadDocument(context.Background(), path)
	require.NoError(t, err)

	col, err := column.New(doc.Columns[0].Input(), nominalClassifier())
	require.NoError(t, err)
	assert.Equal(t, []string{"12345678901234567890", "12345678901234567891"}, col.UniqueValues())
	assert.Equal(t, 2, col.Features().U)
}

func TestReadDocumentRejectsMalformedRowPosteriors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "columns.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"columns": [{
  "name": "age",
  "values": ["1", "2"],
  "type_posterior": {"integer": 1.0},
  "row_posteriors": {"integer": [[0.1, 0.2, 0.3, 0.9], [0.9]]}
}]}`), 0o600))

	_, err := ReadDocument(context.Background(), path)
	require.Error(t, err)
	assert.True(t, colerrors.IsType(err, colerrors.ErrorTypeData))
}

func TestReadCompressedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "columns.json.gz")
	comp, err := compression.NewCompressor(&compression.Config{Algorithm: compression.Gzip, Level: compression.Default})
	require.NoError(t, err)
	data, err := comp.Compress([]byte(documentJSON))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	doc, err := ReadDocument(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, doc.Columns, 1)
}

func TestReadDocumentErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadDocument(context.Background(), filepath.Join(dir, "missing.json"))
	assert.True(t, colerrors.IsType(err, colerrors.ErrorTypeFile))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"columns": [`), 0o600))
	_, err = ReadDocument(context.Background(), bad)
	assert.True(t, colerrors.IsType(err, colerrors.ErrorTypeData))
}

func TestWriteReport(t *testing.T) {
	report := &Report{
		RunID: "run-1",
		Columns: []column.Summary{{
			Name:         "age",
			Type:         "integer",
			ValuesNormal: []string{"1", "2"},
			ArffType:     "numeric",
		}},
		Stats: Stats{Columns: 1},
	}

	for _, name := range []string{"report.json", "report.json.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, WriteReport(path, report))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			data, err = compression.DecompressPath(path, data)
			require.NoError(t, err)

			var decoded Report
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, "run-1", decoded.RunID)
			assert.Equal(t, []string{"1", "2"}, decoded.Columns[0].ValuesNormal)
		})
	}
}
