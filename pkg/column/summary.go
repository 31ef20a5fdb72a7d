package column

import "fmt"

// Summary is a serialisable snapshot of a column.
type Summary struct {
	Name              string             `json:"name"`
	Type              string             `json:"type"`
	InferredType      string             `json:"inferred_type"`
	Rows              int                `json:"rows"`
	UniqueValues      int                `json:"unique_values"`
	RatioNormal       float64            `json:"ratio_normal"`
	RatioMissing      float64            `json:"ratio_missing"`
	RatioAnomalous    float64            `json:"ratio_anomalous"`
	ValuesNormal      []string           `json:"values_normal"`
	ValuesMissing     []string           `json:"values_missing"`
	ValuesAnomalous   []string           `json:"values_anomalous"`
	ArffType          string             `json:"arff_type"`
	ArffPosterior     map[string]float64 `json:"arff_posterior"`
	CategoricalValues []string           `json:"categorical_values"`
	Features          []float64          `json:"features"`
	Error             string             `json:"error,omitempty"`
}

// Summary returns a snapshot of the column's current state.
func (c *Column) Summary() Summary {
	return Summary{
		Name:              c.name,
		Type:              c.typ,
		InferredType:      c.InferredType(),
		Rows:              c.index.Total(),
		UniqueValues:      c.index.Len(),
		RatioNormal:       c.RatioNormal(),
		RatioMissing:      c.RatioMissing(),
		RatioAnomalous:    c.RatioAnomalous(),
		ValuesNormal:      c.ValuesNormal(),
		ValuesMissing:     c.ValuesMissing(),
		ValuesAnomalous:   c.ValuesAnomalous(),
		ArffType:          c.outcome.Label,
		ArffPosterior:     c.outcome.Map(),
		CategoricalValues: c.CategoricalValues(),
		Features:          c.features.Vector(),
	}
}

// String implements fmt.Stringer.
func (c *Column) String() string {
	return fmt.Sprintf("Column(%s type=%s arff=%s normal=%.2f missing=%.2f anomalous=%.2f unique=%d)",
		c.name, c.typ, c.outcome.Label,
		c.RatioNormal(), c.RatioMissing(), c.RatioAnomalous(), c.index.Len())
}
