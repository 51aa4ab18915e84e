package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestMetrics() *Metrics {
	return NewMetrics(Config{
		Address:                 ":0",
		ServiceName:             "test",
		EnableDefaultCollectors: false,
	})
}

func TestObserveStore(t *testing.T) {
	m := newTestMetrics()
	o := NewObserver(m)

	o.ObserveStore("qdrant", 10*time.Millisecond, nil)
	o.ObserveStore("qdrant", 10*time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeTotal.WithLabelValues("qdrant", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeTotal.WithLabelValues("qdrant", "error")))
}

func TestObserveSearch(t *testing.T) {
	m := newTestMetrics()
	o := NewObserver(m)

	o.ObserveSearch("chroma", 5*time.Millisecond, 3, nil)
	o.ObserveSearch("chroma", 5*time.Millisecond, 0, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.searchTotal.WithLabelValues("chroma", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.searchTotal.WithLabelValues("chroma", "error")))
}

func TestEmbeddingCacheCounterIsRegistered(t *testing.T) {
	m := newTestMetrics()
	m.EmbeddingCacheCounter().WithLabelValues("hit").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheTotal.WithLabelValues("hit")))
	assert.Zero(t, testutil.ToFloat64(m.cacheTotal.WithLabelValues("miss")))
}
