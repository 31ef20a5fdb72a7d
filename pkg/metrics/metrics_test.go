package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/colprof/pkg/colerrors"
)

func TestObserveColumn(t *testing.T) {
	c := NewCollector("test")

	c.ObserveColumn("nominal", 0.6, 0.2, 0.2)
	c.ObserveColumn("nominal", 1, 0, 0)
	c.ObserveColumn("numeric", 1, 0, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ColumnsProfiled.WithLabelValues("nominal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ColumnsProfiled.WithLabelValues("numeric")))
	assert.Equal(t, 3, testutil.CollectAndCount(c.PartitionShare))
}

func TestObserveOutcomes(t *testing.T) {
	c := NewCollector("test")

	c.ObserveReclassify(nil)
	c.ObserveReclassify(colerrors.UnknownType("boolean"))
	c.ObserveReclassify(colerrors.New(colerrors.ErrorTypeData, "bad rows"))
	c.ObserveModelLoad(nil, 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Reclassifications.WithLabelValues(StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Reclassifications.WithLabelValues(StatusUnknownType)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Reclassifications.WithLabelValues(StatusFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ModelLoads.WithLabelValues(StatusSuccess)))
}

func TestCollectorsAreIndependent(t *testing.T) {
	a, b := NewCollector("a"), NewCollector("b")

	a.ObserveColumn("date", 1, 0, 0)

	assert.Equal(t, 0.0, testutil.ToFloat64(b.ColumnsProfiled.WithLabelValues("date")))
}

func TestWriteTextfile(t *testing.T) {
	c := NewCollector("colprof")
	c.ObserveColumn("numeric", 0.9, 0.1, 0)

	path := filepath.Join(t.TempDir(), "colprof.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `colprof_columns_profiled_total{arff_type="numeric",component="colprof"} 1`)
}

func TestNilCollector(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.ObserveColumn("numeric", 1, 0, 0)
		c.ObserveStage("classify", time.Second)
		c.ObserveReclassify(nil)
		c.ObserveModelLoad(nil, time.Second)
	})
	assert.NoError(t, c.WriteTextfile(filepath.Join(t.TempDir(), "none.prom")))
	assert.Nil(t, c.Registry())
}

func TestTimer(t *testing.T) {
	timer := NewTimer("stage")
	assert.Equal(t, "stage", timer.Name())
	assert.GreaterOrEqual(t, timer.Stop(), time.Duration(0))
}
