package json

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type artifact struct {
	Classes []string  `json:"classes"`
	Weights []float64 `json:"weights"`
}

func TestUnmarshalStrict(t *testing.T) {
	var a artifact
	require.NoError(t, UnmarshalStrict([]byte(`{"classes":["date"],"weights":[0.5]}`), &a))
	assert.Equal(t, []string{"date"}, a.Classes)

	err := UnmarshalStrict([]byte(`{"classes":["date"],"bias":1}`), &a)
	assert.Error(t, err)
}

func TestWriteIndented(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteIndented(&buf, artifact{Classes: []string{"<nominal>"}, Weights: []float64{1}}))

	assert.Contains(t, buf.String(), "\n  \"classes\"")
	assert.Contains(t, buf.String(), "<nominal>")

	var back artifact
	require.NoError(t, Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, []float64{1}, back.Weights)
}
