package cache

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	hitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translation_cache_hits_total",
			Help: "Cache hits by serving tier",
		},
		[]string{"tier"},
	)

	missesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "translation_cache_misses_total",
			Help: "Lookups answered by neither cache tier",
		},
	)

	degradationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "translation_cache_degradations_total",
			Help: "Shared-tier errors that triggered a local fallback",
		},
	)
)

func init() {
	prometheus.MustRegister(hitsTotal)
	prometheus.MustRegister(missesTotal)
	prometheus.MustRegister(degradationsTotal)
}
