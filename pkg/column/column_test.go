package column

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/colprof/pkg/colerrors"
	"github.com/ajitpratap0/colprof/pkg/posterior"
	"github.com/ajitpratap0/colprof/pkg/testutil"
)

const (
	normal    = posterior.StatusTypeConforming
	missing   = posterior.StatusMissing
	anomalous = posterior.StatusAnomalous
)

// mixedInput has distinct values "1", "2", "3", "???", "NA" in sorted order.
func mixedInput() Input {
	return Input{
		Name:          "age",
		Values:        testutil.Strings("1", "2", "3", "NA", "???"),
		TypePosterior: map[string]float64{"integer": 0.7, "string": 0.3},
		RowPosteriors: map[string]posterior.RowPosteriors{
			"integer": testutil.Rows(normal, normal, normal, anomalous, missing),
			"string":  testutil.Rows(normal, normal, normal, normal, normal),
		},
	}
}

func newColumn(t *testing.T, in Input, label string, opts ...Option) (*Column, *testutil.StubClassifier) {
	t.Helper()
	clf := testutil.NewStubClassifier(label)
	opts = append([]Option{WithLogger(testutil.TestLogger(t))}, opts...)
	c, err := New(in, clf, opts...)
	require.NoError(t, err)
	return c, clf
}

func TestNewMixedColumn(t *testing.T) {
	c, _ := newColumn(t, mixedInput(), "numeric")

	assert.Equal(t, "age", c.Name())
	assert.Equal(t, "integer", c.Type())
	assert.Equal(t, "integer", c.InferredType())

	assert.Equal(t, 0.6, c.RatioNormal())
	assert.Equal(t, 0.2, c.RatioMissing())
	assert.Equal(t, 0.2, c.RatioAnomalous())

	assert.Equal(t, []string{"1", "2", "3"}, c.ValuesNormal())
	assert.Equal(t, []string{"NA"}, c.ValuesMissing())
	assert.Equal(t, []string{"???"}, c.ValuesAnomalous())

	assert.Equal(t, "numeric", c.ArffType())
	assert.Nil(t, c.CategoricalValues())
	assert.Equal(t, []string{"1", "2", "3", "???", "NA"}, c.UniqueValues())
	assert.Equal(t, []int{1, 1, 1, 1, 1}, c.Counts())
	assert.Equal(t, 5, c.Rows())
	assert.Equal(t, []string{"integer", "string"}, c.KnownTypes())
}

func TestNewFeatures(t *testing.T) {
	c, clf := newColumn(t, mixedInput(), "numeric")

	f := c.Features()
	assert.Equal(t, 5, f.U)
	assert.Equal(t, 3, f.UClean)
	assert.Equal(t, 5, f.N)
	assert.Equal(t, 3, f.NClean)

	vec := f.Vector()
	require.Len(t, vec, 6)
	assert.InDeltaSlice(t, []float64{0.7, 0.3}, vec[:2], 1e-12)
	assert.Equal(t, []float64{1, 1, 5, 3}, vec[2:])

	calls := clf.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, f, calls[0])
}

func TestNewRepeatedValue(t *testing.T) {
	c, _ := newColumn(t, Input{
		Name:          "flag",
		Values:        testutil.Strings("x", "x", "x"),
		TypePosterior: map[string]float64{"string": 1},
		RowPosteriors: map[string]posterior.RowPosteriors{"string": testutil.Rows(normal)},
	}, "categorical")

	f := c.Features()
	assert.Equal(t, 1, f.U)
	assert.Equal(t, 1, f.UClean)
	assert.InDelta(t, 1.0/3, f.URatio, 1e-12)
	assert.InDelta(t, 1.0/3, f.URatioClean, 1e-12)
	assert.Equal(t, 1.0, c.RatioNormal())
}

func TestNewNoCleanValues(t *testing.T) {
	c, _ := newColumn(t, Input{
		Name:          "empty",
		Values:        testutil.Strings("NA", "NA", ""),
		TypePosterior: map[string]float64{"integer": 1},
		RowPosteriors: map[string]posterior.RowPosteriors{"integer": testutil.Rows(missing, missing)},
	}, "numeric")

	f := c.Features()
	assert.Equal(t, 0, f.UClean)
	assert.Equal(t, 0, f.NClean)
	assert.Equal(t, 0.0, f.URatioClean)
	assert.Equal(t, 1.0, c.RatioMissing())
	assert.Empty(t, c.ValuesNormal())
}

func TestNewAggregatesTypeFamilies(t *testing.T) {
	c, _ := newColumn(t, Input{
		Name:   "when",
		Values: testutil.Strings("2020-01-01", "2021-02-02"),
		TypePosterior: map[string]float64{
			"date-iso-8601": 0.5,
			"date-eu":       0.2,
			"integer":       0.3,
		},
		RowPosteriors: map[string]posterior.RowPosteriors{
			"date-iso-8601": testutil.Rows(normal, normal),
		},
	}, "date")

	assert.Equal(t, "date-iso-8601", c.Type())
	assert.Equal(t, []string{"date", "integer"}, c.Features().FamilyNames())
	assert.InDelta(t, 0.7, c.Features().Families[0].Probability, 1e-12)
}

func TestCategoricalIsReportedAsNominal(t *testing.T) {
	c, _ := newColumn(t, mixedInput(), "categorical")

	assert.Equal(t, "nominal", c.ArffType())
	assert.Equal(t, []string{"nominal", "numeric", "date"}, c.Outcome().Classes)
	assert.Equal(t, []float64{1, 0, 0}, c.ArffPosterior())
	assert.Equal(t, []string{"1", "2", "3"}, c.CategoricalValues())
}

func TestInferredTypeTieBreak(t *testing.T) {
	in := mixedInput()
	in.TypePosterior = map[string]float64{"string": 0.5, "integer": 0.5}

	c, _ := newColumn(t, in, "numeric")
	assert.Equal(t, "integer", c.InferredType())
}

func TestPartitionCoversEveryValue(t *testing.T) {
	c, _ := newColumn(t, mixedInput(), "numeric")

	for _, typ := range c.KnownTypes() {
		require.NoError(t, c.Reclassify(typ))
		p := c.Partition()

		seen := make(map[int]bool)
		for _, idx := range append(append(append([]int{}, p.Normal...), p.Missing...), p.Anomalous...) {
			assert.False(t, seen[idx], "index %d in two sets", idx)
			seen[idx] = true
		}
		assert.Len(t, seen, len(c.UniqueValues()))
		assert.InDelta(t, 1.0, c.RatioNormal()+c.RatioMissing()+c.RatioAnomalous(), 0.01)
	}
}

func TestRatiosAreRounded(t *testing.T) {
	c, _ := newColumn(t, Input{
		Name:          "thirds",
		Values:        testutil.Strings("a", "b", "c"),
		TypePosterior: map[string]float64{"string": 1},
		RowPosteriors: map[string]posterior.RowPosteriors{"string": testutil.Rows(normal, normal, missing)},
	}, "numeric")

	assert.Equal(t, 0.67, c.RatioNormal())
	assert.Equal(t, 0.33, c.RatioMissing())
	assert.Equal(t, 0.0, c.RatioAnomalous())
}

func TestReclassify(t *testing.T) {
	c, clf := newColumn(t, mixedInput(), "categorical")

	require.NoError(t, c.Reclassify("string"))

	assert.Equal(t, "string", c.Type())
	assert.Equal(t, "integer", c.InferredType())
	assert.Equal(t, 1.0, c.RatioNormal())
	assert.Equal(t, 0.0, c.RatioMissing())
	assert.Equal(t, 0.0, c.RatioAnomalous())
	assert.Empty(t, c.ValuesAnomalous())

	// storage category keeps its first impression
	assert.Len(t, clf.Calls(), 1)
	assert.Equal(t, []string{"1", "2", "3"}, c.CategoricalValues())
	assert.Equal(t, 3, c.Features().UClean)
}

func TestReclassifyRecompute(t *testing.T) {
	c, clf := newColumn(t, mixedInput(), "categorical", WithRecomputeOnReclassify(true))

	require.NoError(t, c.Reclassify("string"))

	calls := clf.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, 5, calls[1].UClean)
	assert.Equal(t, 5, c.Features().UClean)
	assert.Equal(t, []string{"1", "2", "3", "???", "NA"}, c.CategoricalValues())
}

func TestReclassifyIsIdempotent(t *testing.T) {
	c, _ := newColumn(t, mixedInput(), "numeric")
	before := c.Partition()

	require.NoError(t, c.Reclassify(c.Type()))
	require.NoError(t, c.Reclassify(c.Type()))

	assert.True(t, before.Equal(c.Partition()))
	assert.Equal(t, "integer", c.Type())
}

func TestReclassifyUnknownType(t *testing.T) {
	c, _ := newColumn(t, mixedInput(), "numeric")
	before := c.Summary()

	err := c.Reclassify("boolean")

	require.Error(t, err)
	assert.True(t, colerrors.IsType(err, colerrors.ErrorTypeUnknownType))
	assert.False(t, colerrors.IsFatal(err))
	assert.Contains(t, err.Error(), `"boolean"`)
	assert.Equal(t, before, c.Summary())
}

func TestReclassifyRecomputeFailureLeavesState(t *testing.T) {
	c, clf := newColumn(t, mixedInput(), "numeric", WithRecomputeOnReclassify(true))
	before := c.Summary()

	clf.Err = errors.New("classifier unavailable")
	require.Error(t, c.Reclassify("string"))

	assert.Equal(t, before, c.Summary())
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *Input)
		errType colerrors.ErrorType
	}{
		{
			name:    "inferred type without row posteriors",
			mutate:  func(in *Input) { delete(in.RowPosteriors, "integer") },
			errType: colerrors.ErrorTypeData,
		},
		{
			name:    "empty posterior",
			mutate:  func(in *Input) { in.TypePosterior = nil },
			errType: colerrors.ErrorTypeData,
		},
		{
			name:    "no values",
			mutate:  func(in *Input) { in.Values = nil },
			errType: colerrors.ErrorTypeData,
		},
		{
			name:    "row count mismatch",
			mutate:  func(in *Input) { in.RowPosteriors["integer"] = testutil.Rows(normal) },
			errType: colerrors.ErrorTypeData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := mixedInput()
			tt.mutate(&in)

			_, err := New(in, testutil.NewStubClassifier("numeric"))
			require.Error(t, err)
			assert.True(t, colerrors.IsType(err, tt.errType), "got %v", err)
		})
	}
}

func TestNewWithoutInferredRowsIsFatal(t *testing.T) {
	in := mixedInput()
	delete(in.RowPosteriors, "integer")

	_, err := New(in, testutil.NewStubClassifier("numeric"))
	require.Error(t, err)
	assert.True(t, colerrors.IsFatal(err))
	assert.Contains(t, err.Error(), `type "integer" is unknown`)
}

func TestNewRequiresClassifier(t *testing.T) {
	_, err := New(mixedInput(), nil)
	require.Error(t, err)
	assert.True(t, colerrors.IsType(err, colerrors.ErrorTypeInternal))
}

func TestNewPropagatesClassifierError(t *testing.T) {
	clf := testutil.NewStubClassifier("numeric")
	clf.Err = colerrors.New(colerrors.ErrorTypeDimension, "width mismatch")

	_, err := New(mixedInput(), clf)
	require.Error(t, err)
	assert.True(t, colerrors.IsType(err, colerrors.ErrorTypeDimension))
}

func TestNewDoesNotAliasInput(t *testing.T) {
	in := mixedInput()
	c, _ := newColumn(t, in, "numeric")

	delete(in.RowPosteriors, "string")
	assert.Equal(t, []string{"integer", "string"}, c.KnownTypes())

	p := c.Partition()
	p.Normal[0] = 99
	assert.Equal(t, []int{0, 1, 2}, c.Partition().Normal)
}
