// Package metrics exposes prometheus counters for buffer pool traffic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PoolMetrics mirrors the pool's cumulative counters for scraping. The
// pool's own NumReadIO/NumWriteIO accessors stay the source of truth.
type PoolMetrics struct {
	DiskReads  prometheus.Counter
	DiskWrites prometheus.Counter
	Hits       prometheus.Counter
	Misses     prometheus.Counter
	Evictions  prometheus.Counter
	Flushes    prometheus.Counter
}

// NewPoolMetrics registers the pool counters with reg.
func NewPoolMetrics(reg prometheus.Registerer) *PoolMetrics {
	factory := promauto.With(reg)
	return &PoolMetrics{
		DiskReads: factory.NewCounter(prometheus.CounterOpts{
			Name: "pooldb_disk_reads_total",
			Help: "Number of page reads from the page file.",
		}),
		DiskWrites: factory.NewCounter(prometheus.CounterOpts{
			Name: "pooldb_disk_writes_total",
			Help: "Number of page writes to the page file.",
		}),
		Hits: factory.NewCounter(prometheus.CounterOpts{
			Name: "pooldb_cache_hits_total",
			Help: "Number of pins served from a resident frame.",
		}),
		Misses: factory.NewCounter(prometheus.CounterOpts{
			Name: "pooldb_cache_misses_total",
			Help: "Number of pins that loaded the page from disk.",
		}),
		Evictions: factory.NewCounter(prometheus.CounterOpts{
			Name: "pooldb_evictions_total",
			Help: "Number of resident pages evicted to make room.",
		}),
		Flushes: factory.NewCounter(prometheus.CounterOpts{
			Name: "pooldb_flushes_total",
			Help: "Number of dirty pages written back outside eviction.",
		}),
	}
}
