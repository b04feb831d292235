package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts item lifecycle events.
type Metrics struct {
	ItemsCreated prometheus.Counter
	ItemsMerged  prometheus.Counter
	ItemsDeleted prometheus.Counter
}

// New creates and registers the item metrics.
func New() *Metrics {
	return &Metrics{
		ItemsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "einkauf_items_created_total",
			Help: "Total number of shopping items created.",
		}),
		ItemsMerged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "einkauf_items_merged_total",
			Help: "Total number of adds merged into an existing item.",
		}),
		ItemsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "einkauf_items_deleted_total",
			Help: "Total number of shopping items deleted, including quantity-zero deletions.",
		}),
	}
}

func (m *Metrics) IncrementCreated() {
	if m != nil {
		m.ItemsCreated.Inc()
	}
}

func (m *Metrics) IncrementMerged() {
	if m != nil {
		m.ItemsMerged.Inc()
	}
}

func (m *Metrics) IncrementDeleted() {
	if m != nil {
		m.ItemsDeleted.Inc()
	}
}
