package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anchorplan/anchorplan/pkg/observability"
)

// durationBucketsMs covers sub-millisecond cache lookups up to
// multi-second placements on large plans.
var durationBucketsMs = []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000}

// Metrics collects Prometheus metrics for the server and, through the
// observability hooks, for the engine, cache, and run store behind it.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	placements        prometheus.Counter
	placementDuration prometheus.Histogram
	detectDuration    prometheus.Histogram
	roomsDetected     prometheus.Histogram
	anchorsPlaced     prometheus.Histogram
	anchorsRemoved    prometheus.Counter

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec

	runsStored  prometheus.Counter
	storeErrors *prometheus.CounterVec
}

// NewMetrics creates the collector set on the given registry. A nil
// registry gets a fresh private one, which keeps test instances
// independent.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "anchorplan_http_requests_total",
			Help: "HTTP requests by method, route pattern, and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "anchorplan_http_request_duration_ms",
			Help:    "HTTP request duration in milliseconds.",
			Buckets: durationBucketsMs,
		}, []string{"route"}),
		placements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "anchorplan_placements_total",
			Help: "Completed placement runs.",
		}),
		placementDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "anchorplan_placement_duration_ms",
			Help:    "End-to-end placement duration in milliseconds.",
			Buckets: durationBucketsMs,
		}),
		detectDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "anchorplan_detect_duration_ms",
			Help:    "Room detection duration in milliseconds.",
			Buckets: durationBucketsMs,
		}),
		roomsDetected: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "anchorplan_rooms_detected",
			Help:    "Rooms detected per plan.",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		}),
		anchorsPlaced: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "anchorplan_anchors_placed",
			Help:    "Anchors placed per run.",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200},
		}),
		anchorsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "anchorplan_anchors_removed_total",
			Help: "Anchors removed by density passes.",
		}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "anchorplan_cache_hits_total",
			Help: "Cache hits by key type.",
		}, []string{"type"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "anchorplan_cache_misses_total",
			Help: "Cache misses by key type.",
		}, []string{"type"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "anchorplan_cache_set_bytes_total",
			Help: "Bytes written to the cache by key type.",
		}, []string{"type"}),
		runsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "anchorplan_runs_stored_total",
			Help: "Placement runs archived in the run store.",
		}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "anchorplan_store_errors_total",
			Help: "Run store failures by operation.",
		}, []string{"op"}),
	}
	reg.MustRegister(
		m.httpRequests, m.httpDuration,
		m.placements, m.placementDuration, m.detectDuration,
		m.roomsDetected, m.anchorsPlaced, m.anchorsRemoved,
		m.cacheHits, m.cacheMisses, m.cacheBytes,
		m.runsStored, m.storeErrors,
	)
	return m
}

// Install registers this collector as the process-wide engine, cache,
// and store hooks. Call once at startup.
func (m *Metrics) Install() {
	observability.SetEngineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetStoreHooks(m)
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one handled HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(float64(d.Milliseconds()))
}

var (
	_ observability.EngineHooks = (*Metrics)(nil)
	_ observability.CacheHooks  = (*Metrics)(nil)
	_ observability.StoreHooks  = (*Metrics)(nil)
)

func (m *Metrics) OnDetectStart(context.Context, int) {}

func (m *Metrics) OnDetectComplete(_ context.Context, _, roomCount int, d time.Duration) {
	m.detectDuration.Observe(float64(d.Milliseconds()))
	m.roomsDetected.Observe(float64(roomCount))
}

func (m *Metrics) OnRoomStart(context.Context, int, string) {}

func (m *Metrics) OnRoomComplete(context.Context, int, string, int, time.Duration, error) {}

func (m *Metrics) OnPlaceStart(context.Context, int, int) {}

func (m *Metrics) OnPlaceComplete(_ context.Context, anchorCount int, d time.Duration, err error) {
	if err != nil {
		return
	}
	m.placements.Inc()
	m.placementDuration.Observe(float64(d.Milliseconds()))
	m.anchorsPlaced.Observe(float64(anchorCount))
}

func (m *Metrics) OnOptimizeStart(context.Context, int, int) {}

func (m *Metrics) OnOptimizeComplete(_ context.Context, removedCount, _ int, _ time.Duration) {
	m.anchorsRemoved.Add(float64(removedCount))
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheHits.WithLabelValues(keyType).Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheMisses.WithLabelValues(keyType).Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Metrics) OnRunStored(_ context.Context, _ string, _ int) {
	m.runsStored.Inc()
}

func (m *Metrics) OnRunFetched(context.Context, string, bool) {}

func (m *Metrics) OnStoreError(_ context.Context, op string, _ error) {
	m.storeErrors.WithLabelValues(op).Inc()
}
