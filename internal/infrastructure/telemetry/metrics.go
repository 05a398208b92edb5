package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "storefront"

// Address lookup outcomes
const (
	LookupFound       = "found"
	LookupNotFound    = "not_found"
	LookupFailed      = "failed"
	LookupRateLimited = "rate_limited"
	LookupStale       = "stale"
)

// Metrics holds the storefront's Prometheus collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	addressLookups    *prometheus.CounterVec
	lookupDuration    prometheus.Histogram
	cartMutations     *prometheus.CounterVec
	wishlistMutations *prometheus.CounterVec
	confirmations     *prometheus.CounterVec
	snapshotErrors    *prometheus.CounterVec
}

// NewMetrics creates and registers every collector, plus the Go and process collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		addressLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "address_lookups_total",
			Help:      "Postal code lookups by outcome.",
		}, []string{"outcome"}),
		lookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "address_lookup_duration_seconds",
			Help:      "Latency of postal code lookups.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cart_mutations_total",
			Help:      "Cart mutations by operation.",
		}, []string{"operation"}),
		wishlistMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "wishlist_mutations_total",
			Help:      "Wishlist mutations by operation.",
		}, []string{"operation"}),
		confirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "confirmations_total",
			Help:      "Confirmation dialogs by action kind and result.",
		}, []string{"kind", "result"}),
		snapshotErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "snapshot_errors_total",
			Help:      "Snapshot store failures and discarded snapshots by key and reason.",
		}, []string{"key", "reason"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.addressLookups,
		m.lookupDuration,
		m.cartMutations,
		m.wishlistMutations,
		m.confirmations,
		m.snapshotErrors,
	)
	return m
}

// Registry exposes the registry for tests and extra collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTPRequest records one served request
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveAddressLookup records a lookup outcome and its latency
func (m *Metrics) ObserveAddressLookup(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.addressLookups.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		m.lookupDuration.Observe(elapsed.Seconds())
	}
}

// IncCartMutation counts a committed cart mutation
func (m *Metrics) IncCartMutation(operation string) {
	if m == nil {
		return
	}
	m.cartMutations.WithLabelValues(operation).Inc()
}

// IncWishlistMutation counts a committed wishlist mutation
func (m *Metrics) IncWishlistMutation(operation string) {
	if m == nil {
		return
	}
	m.wishlistMutations.WithLabelValues(operation).Inc()
}

// IncConfirmation counts a dialog event: staged, confirmed, cancelled or rejected
func (m *Metrics) IncConfirmation(kind, result string) {
	if m == nil {
		return
	}
	m.confirmations.WithLabelValues(kind, result).Inc()
}

// IncSnapshotError counts a failed or discarded snapshot
func (m *Metrics) IncSnapshotError(key, reason string) {
	if m == nil {
		return
	}
	m.snapshotErrors.WithLabelValues(key, reason).Inc()
}
