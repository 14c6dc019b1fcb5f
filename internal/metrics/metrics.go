// Package metrics регистрирует счётчики пути обхода и пути запроса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "homescout_fetch_total",
		Help: "Fetched pages by result class.",
	}, []string{"result"})

	FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "homescout_fetch_duration_seconds",
		Help:    "Page fetch duration, politeness delay excluded.",
		Buckets: prometheus.DefBuckets,
	})

	SearchTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "homescout_search_total",
		Help: "Search queries served.",
	})

	CandidatesScored = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "homescout_candidates_scored",
		Help:    "Candidates scored per search query.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
	})
)

const (
	FetchResultOK        = "ok"
	FetchResultHTTPError = "http_error"
	FetchResultTransport = "transport_error"
)
