package posterior

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypePosteriorOrdering(t *testing.T) {
	tp := NewTypePosterior(map[string]float64{
		"string":   0.1,
		"integer":  0.6,
		"date-iso": 0.2,
		"date-eu":  0.1,
	})

	assert.Equal(t, []string{"date-eu", "date-iso", "integer", "string"}, tp.Types())
	assert.Equal(t, 4, tp.Len())
	assert.InDelta(t, 1.0, tp.Sum(), 1e-12)
	assert.True(t, tp.Normalized(1e-9))

	p, ok := tp.Get("integer")
	require.True(t, ok)
	assert.Equal(t, 0.6, p)

	_, ok = tp.Get("boolean")
	assert.False(t, ok)
}

func TestTypePosteriorFamilies(t *testing.T) {
	tp := NewTypePosterior(map[string]float64{
		"boolean":       0.05,
		"date-iso-8601": 0.3,
		"date-eu":       0.2,
		"float":         0.1,
		"integer":       0.25,
		"string":        0.1,
	})

	families := tp.Families()

	names := make([]string, len(families))
	for i, f := range families {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"boolean", "date", "float", "integer", "string"}, names)
	assert.InDelta(t, 0.5, families[1].Probability, 1e-12)

	total := 0.0
	for _, f := range families {
		total += f.Probability
	}
	assert.InDelta(t, tp.Sum(), total, 1e-12)
}

func TestTypePosteriorFamiliesSortByFamilyName(t *testing.T) {
	// "date-x" sorts before "datetime" but both families must come out in
	// family-name order.
	tp := NewTypePosterior(map[string]float64{
		"datetime": 0.4,
		"date-x":   0.6,
	})

	families := tp.Families()
	require.Len(t, families, 2)
	assert.Equal(t, "date", families[0].Name)
	assert.Equal(t, "datetime", families[1].Name)
}

func TestMostLikely(t *testing.T) {
	tests := []struct {
		name  string
		probs map[string]float64
		want  string
	}{
		{"clear winner", map[string]float64{"integer": 0.9, "string": 0.1}, "integer"},
		{"tie goes to first name", map[string]float64{"string": 0.5, "integer": 0.5}, "integer"},
		{"subtype wins on its own", map[string]float64{"date-iso": 0.4, "date-eu": 0.35, "string": 0.25}, "date-iso"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewTypePosterior(tt.probs).MostLikely()
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := NewTypePosterior(nil).MostLikely()
	assert.False(t, ok)
}

func TestTypePosteriorMapRoundTrip(t *testing.T) {
	probs := map[string]float64{"integer": 0.9, "string": 0.1}
	assert.Equal(t, probs, NewTypePosterior(probs).Map())
}
