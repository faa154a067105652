package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	inputRunes   prometheus.Histogram
	reloads      *prometheus.CounterVec
	lexiconWords prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer, cacheStats func() (uint64, uint64)) *metrics {
	f := promauto.With(reg)
	m := &metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wordlattice_requests_total",
			Help: "Segmentation requests by function and outcome",
		}, []string{"function", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wordlattice_request_duration_seconds",
			Help:    "Segmentation latency",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14), // 50µs to ~400ms
		}, []string{"function"}),
		inputRunes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "wordlattice_input_runes",
			Help:    "Length of segmented inputs in runes; lattice build is quadratic in it",
			Buckets: prometheus.ExponentialBuckets(4, 2, 8), // 4 to 512
		}),
		reloads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wordlattice_lexicon_reloads_total",
			Help: "Lexicon reloads by outcome",
		}, []string{"outcome"}),
		lexiconWords: f.NewGauge(prometheus.GaugeOpts{
			Name: "wordlattice_lexicon_words",
			Help: "Words in the active lexicon",
		}),
	}
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "wordlattice_cache_hits",
		Help: "Result cache hits of the active engine",
	}, func() float64 { h, _ := cacheStats(); return float64(h) })
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "wordlattice_cache_misses",
		Help: "Result cache misses of the active engine",
	}, func() float64 { _, m := cacheStats(); return float64(m) })
	return m
}
