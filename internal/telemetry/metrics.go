package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/zhouzirui/f1-api/backend/internal/model/f1"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "f1api_http_requests_total",
		Help: "HTTP requests handled, by route pattern and status code.",
	}, []string{"route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "f1api_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	datasetRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "f1api_dataset_records",
		Help: "Records loaded at start-up, by collection.",
	}, []string{"collection"})

	liveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "f1api_live_connections",
		Help: "Open live feed connections (websocket and SSE).",
	})
)

// ObserveRequest records one handled request.
func ObserveRequest(route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveDataset publishes the loaded collection sizes.
func ObserveDataset(counts f1.Counts) {
	datasetRecords.WithLabelValues("drivers").Set(float64(counts.Drivers))
	datasetRecords.WithLabelValues("constructors").Set(float64(counts.Constructors))
	datasetRecords.WithLabelValues("teams").Set(float64(counts.Teams))
	datasetRecords.WithLabelValues("races").Set(float64(counts.Races))
}

// LiveConnectionOpened and LiveConnectionClosed track streaming clients.
func LiveConnectionOpened() { liveConnections.Inc() }

func LiveConnectionClosed() { liveConnections.Dec() }
