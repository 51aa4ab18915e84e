package metrics

import (
	"time"

	"github.com/hadv/vito-mcp/internal/database"
)

// Observer implements database.Observer on the Prometheus metrics.
type Observer struct {
	m *Metrics
}

var _ database.Observer = (*Observer)(nil)

// NewObserver creates the knowledge-operation observer.
func NewObserver(m *Metrics) *Observer {
	return &Observer{m: m}
}

func (o *Observer) ObserveStore(backend string, duration time.Duration, err error) {
	o.m.storeTotal.WithLabelValues(backend, status(err)).Inc()
	o.m.storeDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

func (o *Observer) ObserveSearch(backend string, duration time.Duration, hits int, err error) {
	o.m.searchTotal.WithLabelValues(backend, status(err)).Inc()
	o.m.searchDuration.WithLabelValues(backend).Observe(duration.Seconds())
	if err == nil {
		o.m.searchHits.WithLabelValues(backend).Observe(float64(hits))
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
