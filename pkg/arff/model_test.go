package arff

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/colprof/pkg/colerrors"
	"github.com/ajitpratap0/colprof/pkg/features"
	"github.com/ajitpratap0/colprof/pkg/posterior"
)

// uniqueCountModel scores numeric up and categorical down with the scaled U.
func uniqueCountModel(t *testing.T, center float64) *Model {
	t.Helper()
	m, err := NewModel(
		Scaler{Center: []float64{center, 0}, Scale: []float64{1, 1}},
		&LogisticRegression{
			Classes: []string{"categorical", "numeric", "date"},
			Coef: [][]float64{
				{0, 0, 0, -1, 0},
				{0, 0, 0, 1, 0},
				{0, 0, 0, 0, 0},
			},
			Intercept:  []float64{0, 0, 0},
			MultiClass: MultiClassMultinomial,
		})
	require.NoError(t, err)
	return m
}

func oneFamily(u int) features.Features {
	return features.Features{
		Families:    []posterior.Family{{Name: "integer", Probability: 1}},
		URatio:      0.5,
		URatioClean: 0.5,
		U:           u,
		UClean:      u,
		N:           2 * u,
		NClean:      2 * u,
	}
}

func TestClassifyMultinomial(t *testing.T) {
	m := uniqueCountModel(t, 0)

	out, err := m.Classify(oneFamily(3))
	require.NoError(t, err)

	assert.Equal(t, LabelNumeric, out.Label)
	assert.Equal(t, []string{"nominal", "numeric", "date"}, out.Classes)
	require.Len(t, out.Posterior, 3)
	assert.InDelta(t, 1.0, out.Posterior[0]+out.Posterior[1]+out.Posterior[2], 1e-12)

	// softmax of [-3, 3, 0]
	denom := math.Exp(-3) + math.Exp(3) + 1
	assert.InDelta(t, math.Exp(3)/denom, out.Probability("numeric"), 1e-12)
	assert.InDelta(t, 1/denom, out.Map()["date"], 1e-12)
}

func TestClassifyScalesUniqueCounts(t *testing.T) {
	// centering U at 10 turns U=3 into -7, which favours categorical
	m := uniqueCountModel(t, 10)

	f := oneFamily(3)
	out, err := m.Classify(f)
	require.NoError(t, err)

	assert.Equal(t, LabelNominal, out.Label)
	assert.Equal(t, 3, f.U, "features are not modified")
}

func TestClassifyBinary(t *testing.T) {
	m, err := NewModel(
		Scaler{Center: []float64{0, 0}, Scale: []float64{0, 0}},
		&LogisticRegression{
			Classes:   []string{"categorical", "numeric"},
			Coef:      [][]float64{{0, 0, 0, 1, 0}},
			Intercept: []float64{-2},
		})
	require.NoError(t, err)
	assert.Equal(t, "binary", m.MultiClass())

	out, err := m.Classify(oneFamily(3))
	require.NoError(t, err)

	p := 1 / (1 + math.Exp(-1))
	assert.Equal(t, LabelNumeric, out.Label)
	assert.InDeltaSlice(t, []float64{1 - p, p}, out.Posterior, 1e-12)

	out, err = m.Classify(oneFamily(1))
	require.NoError(t, err)
	assert.Equal(t, LabelNominal, out.Label)
}

func TestClassifyOvR(t *testing.T) {
	lr := &LogisticRegression{
		Classes:    []string{"date", "numeric"},
		Coef:       [][]float64{{1, 0, 0, 0, 0}, {-1, 0, 0, 0, 0}},
		Intercept:  []float64{0, 0},
		MultiClass: MultiClassOvR,
	}
	m, err := NewModel(Scaler{Center: []float64{0, 0}, Scale: []float64{1, 1}}, lr)
	require.NoError(t, err)

	out, err := m.Classify(oneFamily(2))
	require.NoError(t, err)

	hi, lo := 1/(1+math.Exp(-1)), 1/(1+math.Exp(1))
	assert.Equal(t, LabelDate, out.Label)
	assert.InDeltaSlice(t, []float64{hi / (hi + lo), lo / (hi + lo)}, out.Posterior, 1e-12)
}

func TestClassifyDimensionMismatch(t *testing.T) {
	m := uniqueCountModel(t, 0)

	f := oneFamily(3)
	f.Families = append(f.Families, posterior.Family{Name: "string", Probability: 0})

	_, err := m.Classify(f)
	require.Error(t, err)
	assert.True(t, colerrors.IsType(err, colerrors.ErrorTypeDimension))
}

func TestModelAccessors(t *testing.T) {
	m := uniqueCountModel(t, 0)

	assert.Equal(t, 5, m.Width())
	assert.Equal(t, 1, m.Families())
	assert.Equal(t, MultiClassMultinomial, m.MultiClass())

	classes := m.Classes()
	classes[0] = "mutated"
	assert.Equal(t, "nominal", m.Classes()[0])
}

func TestNewModelRejectsInvalidArtifacts(t *testing.T) {
	good := Scaler{Center: []float64{0, 0}, Scale: []float64{1, 1}}

	tests := []struct {
		name   string
		scaler Scaler
		lr     *LogisticRegression
	}{
		{
			name:   "short scaler",
			scaler: Scaler{Center: []float64{0}, Scale: []float64{1}},
			lr:     &LogisticRegression{Classes: []string{"a", "b"}, Coef: [][]float64{{1}}, Intercept: []float64{0}},
		},
		{
			name:   "nan scaler",
			scaler: Scaler{Center: []float64{math.NaN(), 0}, Scale: []float64{1, 1}},
			lr:     &LogisticRegression{Classes: []string{"a", "b"}, Coef: [][]float64{{1}}, Intercept: []float64{0}},
		},
		{
			name:   "single class",
			scaler: good,
			lr:     &LogisticRegression{Classes: []string{"a"}, Coef: [][]float64{{1}}, Intercept: []float64{0}},
		},
		{
			name:   "missing intercept",
			scaler: good,
			lr:     &LogisticRegression{Classes: []string{"a", "b", "c"}, Coef: [][]float64{{1}, {1}, {1}}, Intercept: []float64{0}},
		},
		{
			name:   "ragged coefficients",
			scaler: good,
			lr:     &LogisticRegression{Classes: []string{"a", "b", "c"}, Coef: [][]float64{{1}, {1, 2}, {1}}, Intercept: []float64{0, 0, 0}},
		},
		{
			name:   "unknown strategy",
			scaler: good,
			lr:     &LogisticRegression{Classes: []string{"a", "b", "c"}, Coef: [][]float64{{1}, {1}, {1}}, Intercept: []float64{0, 0, 0}, MultiClass: "crammer"},
		},
		{
			name:   "infinite coefficient",
			scaler: good,
			lr:     &LogisticRegression{Classes: []string{"a", "b"}, Coef: [][]float64{{math.Inf(1)}}, Intercept: []float64{0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewModel(tt.scaler, tt.lr)
			require.Error(t, err)
			assert.True(t, colerrors.IsType(err, colerrors.ErrorTypeModelLoad))
		})
	}
}

func TestRenameLabel(t *testing.T) {
	assert.Equal(t, "nominal", RenameLabel("categorical"))
	assert.Equal(t, "numeric", RenameLabel("numeric"))
	assert.Equal(t, "nominal", RenameLabel("nominal"))
}
