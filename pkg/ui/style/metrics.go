package style

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricCombineHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "prism",
		Subsystem: "style",
		Name:      "combine_cache_hits_total",
		Help:      "Style combinations served from the memo cache.",
	})
	metricCombineMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "prism",
		Subsystem: "style",
		Name:      "combine_cache_misses_total",
		Help:      "Style combinations computed and inserted into the memo cache.",
	})
	metricCombineEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "prism",
		Subsystem: "style",
		Name:      "combine_cache_evictions_total",
		Help:      "Style combinations evicted from the memo cache at capacity.",
	})
)

func recordCombineHit() {
	metricCombineHits.Inc()
}

func recordCombineMiss() {
	metricCombineMisses.Inc()
}

func recordCombineEviction(pair, Style) {
	metricCombineEvictions.Inc()
}
