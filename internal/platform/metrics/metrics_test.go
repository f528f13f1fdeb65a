package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecordOutcomes(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveLoad("startup", 2, 5, 1, 3)
	m.IncrementEdit("checked", "applied")
	m.IncrementEdit("checked", "applied")
	m.IncrementDecision("verified")
	m.ObservePersist(time.Now(), nil)
	m.ObservePersist(time.Now(), errors.New("disk full"))

	assert.Equal(t, 5.0, testutil.ToFloat64(m.RecordsLoaded))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DocumentsLoaded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MalformedLines))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.DroppedRecords))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Edits.WithLabelValues("checked", "applied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Decisions.WithLabelValues("verified")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistFailures))
	assert.Equal(t, 2, testutil.CollectAndCount(m.PersistDuration))
}
