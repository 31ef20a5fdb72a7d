package column

import (
	"maps"
	"slices"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"github.com/ajitpratap0/colprof/pkg/arff"
	"github.com/ajitpratap0/colprof/pkg/colerrors"
	"github.com/ajitpratap0/colprof/pkg/features"
	"github.com/ajitpratap0/colprof/pkg/posterior"
	"github.com/ajitpratap0/colprof/pkg/values"
)

// Input is everything known about a column before profiling.
type Input struct {
	Name string
	// Values are the raw cells; each is compared by its string form
	Values []interface{}
	// TypePosterior is the probability of each candidate type
	TypePosterior map[string]float64
	// RowPosteriors holds, per type, one row per distinct value in sorted
	// string order
	RowPosteriors map[string]posterior.RowPosteriors
}

// Column is a profiled column.
type Column struct {
	name          string
	raw           []interface{}
	index         *values.Index
	typePosterior posterior.TypePosterior
	rowPosteriors map[string]posterior.RowPosteriors
	classifier    arff.Classifier
	opts          options

	typ         string
	partition   posterior.Partition
	features    features.Features
	outcome     arff.Outcome
	categorical []string
}

// New profiles a column. The selected type is the most likely type of the
// posterior, which must have row posteriors.
func New(in Input, classifier arff.Classifier, opts ...Option) (*Column, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if classifier == nil {
		return nil, colerrors.New(colerrors.ErrorTypeInternal, "a classifier is required").
			WithDetail("column", in.Name)
	}

	tp := posterior.NewTypePosterior(in.TypePosterior)
	typ, ok := tp.MostLikely()
	if !ok {
		return nil, colerrors.New(colerrors.ErrorTypeData, "type posterior is empty").
			WithDetail("column", in.Name)
	}
	if !tp.Normalized(o.tolerance) {
		o.logger.Warn("type posterior is not normalized",
			zap.String("column", in.Name),
			zap.Float64("sum", tp.Sum()))
	}

	index := values.NewIndex(in.Values)
	if index.Total() == 0 {
		return nil, colerrors.New(colerrors.ErrorTypeData, "column has no values").
			WithDetail("column", in.Name)
	}

	c := &Column{
		name:          in.Name,
		raw:           in.Values,
		index:         index,
		typePosterior: tp,
		rowPosteriors: maps.Clone(in.RowPosteriors),
		classifier:    classifier,
		opts:          o,
	}

	partition, err := c.partitionFor(typ)
	if colerrors.IsType(err, colerrors.ErrorTypeUnknownType) {
		return nil, colerrors.Wrap(err, colerrors.ErrorTypeData, "most likely type has no row posteriors").
			WithDetail("column", c.name).
			WithDetail("type", typ)
	}
	if err != nil {
		return nil, err
	}
	f, outcome, err := c.classify(partition)
	if err != nil {
		return nil, err
	}

	c.typ = typ
	c.partition = partition
	c.setOutcome(f, outcome)

	o.logger.Debug("profiled column",
		zap.String("column", c.name),
		zap.String("type", c.typ),
		zap.String("arff_type", c.outcome.Label),
		zap.Int("rows", index.Total()),
		zap.Int("unique_values", index.Len()))

	return c, nil
}

func (c *Column) partitionFor(typ string) (posterior.Partition, error) {
	rows, ok := c.rowPosteriors[typ]
	if !ok {
		return posterior.Partition{}, colerrors.UnknownType(typ).WithDetail("column", c.name)
	}
	if err := rows.Validate(c.index.Len()); err != nil {
		return posterior.Partition{}, colerrors.Wrap(err, colerrors.ErrorTypeData, "invalid row posteriors").
			WithDetail("column", c.name).
			WithDetail("type", typ)
	}
	return posterior.PartitionRows(rows), nil
}

func (c *Column) classify(p posterior.Partition) (features.Features, arff.Outcome, error) {
	f, err := features.Build(c.typePosterior, p, c.index.Counts(), c.raw)
	if err != nil {
		return features.Features{}, arff.Outcome{}, err
	}
	outcome, err := c.classifier.Classify(f)
	if err != nil {
		return features.Features{}, arff.Outcome{}, err
	}
	return f, outcome, nil
}

func (c *Column) setOutcome(f features.Features, outcome arff.Outcome) {
	c.features = f
	c.outcome = outcome
	if outcome.Label == arff.LabelNominal {
		c.categorical = c.index.Select(c.partition.Normal)
	} else {
		c.categorical = nil
	}
}

// Reclassify selects a different type and re-partitions the values under
// it. An unknown type returns an ErrorTypeUnknownType error and leaves the
// column unchanged.
func (c *Column) Reclassify(typ string) error {
	partition, err := c.partitionFor(typ)
	if err != nil {
		return err
	}

	if !c.opts.recompute {
		c.typ = typ
		c.partition = partition
		return nil
	}

	f, outcome, err := c.classify(partition)
	if err != nil {
		return err
	}
	c.typ = typ
	c.partition = partition
	c.setOutcome(f, outcome)
	return nil
}

// InferredType returns the most likely type of the type posterior given at
// construction, regardless of later reclassification.
func (c *Column) InferredType() string {
	typ, _ := c.typePosterior.MostLikely()
	return typ
}

// RatioNormal returns the share of rows holding a type-conforming value,
// rounded to two decimals.
func (c *Column) RatioNormal() float64 {
	return c.ratio(c.partition.Normal)
}

// RatioMissing returns the share of rows holding a missing value, rounded
// to two decimals.
func (c *Column) RatioMissing() float64 {
	return c.ratio(c.partition.Missing)
}

// RatioAnomalous returns the share of rows holding an anomalous value,
// rounded to two decimals.
func (c *Column) RatioAnomalous() float64 {
	return c.ratio(c.partition.Anomalous)
}

func (c *Column) ratio(indices []int) float64 {
	share := float64(c.index.SumCounts(indices)) / float64(c.index.Total())
	rounded, err := stats.Round(share, 2)
	if err != nil {
		return share
	}
	return rounded
}

// ValuesNormal returns the type-conforming distinct values in sorted order.
func (c *Column) ValuesNormal() []string {
	return c.index.Select(c.partition.Normal)
}

// ValuesMissing returns the missing distinct values in sorted order.
func (c *Column) ValuesMissing() []string {
	return c.index.Select(c.partition.Missing)
}

// ValuesAnomalous returns the anomalous distinct values in sorted order.
func (c *Column) ValuesAnomalous() []string {
	return c.index.Select(c.partition.Anomalous)
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Type returns the selected type.
func (c *Column) Type() string { return c.typ }

// KnownTypes returns the types the column can be reclassified to.
func (c *Column) KnownTypes() []string {
	return slices.Sorted(maps.Keys(c.rowPosteriors))
}

// TypePosterior returns the type posterior given at construction.
func (c *Column) TypePosterior() posterior.TypePosterior { return c.typePosterior }

// Partition returns a copy of the current partition.
func (c *Column) Partition() posterior.Partition { return c.partition.Clone() }

// Features returns the features the storage category was derived from.
func (c *Column) Features() features.Features { return c.features }

// Outcome returns the storage category and its posterior.
func (c *Column) Outcome() arff.Outcome { return c.outcome }

// ArffType returns the storage category.
func (c *Column) ArffType() string { return c.outcome.Label }

// ArffPosterior returns the storage category posterior, aligned with
// Outcome().Classes.
func (c *Column) ArffPosterior() []float64 {
	return slices.Clone(c.outcome.Posterior)
}

// CategoricalValues returns the type-conforming values when the storage
// category is nominal, and nil otherwise.
func (c *Column) CategoricalValues() []string {
	return slices.Clone(c.categorical)
}

// UniqueValues returns the distinct values in sorted order.
func (c *Column) UniqueValues() []string { return c.index.Values() }

// Counts returns the occurrence count of each distinct value.
func (c *Column) Counts() []int { return c.index.Counts() }

// Rows returns the number of cells.
func (c *Column) Rows() int { return c.index.Total() }
