package prometheus

import (
	"strconv"
	"time"

	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

// AppMetrics holds the metrics recorded by the atlas.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Dataset layer
	DatasetFetchTotal    CounterVec
	DatasetFetchDuration HistogramVec
	DatasetRecords       GaugeVec

	// Cache layer
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec

	// Choropleth layer
	ChoroplethRendersTotal CounterVec
	LookupMissesTotal      CounterVec

	// Health
	HealthCheckStatus GaugeVec
}

// Default buckets.
var (
	DefaultHTTPDurationBuckets  = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	DefaultFetchDurationBuckets = []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}
)

// NewAppMetrics registers all metrics on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "route", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "route")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "In-flight HTTP requests", "method")

	m.DatasetFetchTotal = collector.RegisterCounter("dataset_fetch_total", "Dataset fetches by path and outcome", "path", "outcome")
	m.DatasetFetchDuration = collector.RegisterHistogram("dataset_fetch_duration_seconds", "Dataset fetch duration", DefaultFetchDurationBuckets, "path")
	m.DatasetRecords = collector.RegisterGauge("dataset_records", "Records accepted from the last decode of a dataset", "dataset")

	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "tier")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "tier")

	m.ChoroplethRendersTotal = collector.RegisterCounter("choropleth_renders_total", "Choropleth renders by indicator", "indicator")
	m.LookupMissesTotal = collector.RegisterCounter("lookup_misses_total", "Feature value lookups that ended in no data, by stage", "stage")

	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")

	return m
}

// NewNoopAppMetrics returns AppMetrics whose series record nothing.
func NewNoopAppMetrics() *AppMetrics {
	return NewAppMetrics(NewNoopCollector())
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

// RecordHTTPRequest records one completed request.
func RecordHTTPRequest(m *AppMetrics, method, route string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordDatasetFetch records one fetch from a dataset source.
func RecordDatasetFetch(m *AppMetrics, path string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	switch {
	case errors.IsNotFound(err):
		outcome = "not_found"
	case err != nil:
		outcome = "error"
	}
	m.DatasetFetchTotal.WithLabelValues(path, outcome).Inc()
	m.DatasetFetchDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// RecordCacheAccess records a hit or miss on the named cache tier.
func RecordCacheAccess(m *AppMetrics, tier string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(tier).Inc()
	} else {
		m.CacheMissesTotal.WithLabelValues(tier).Inc()
	}
}

// RecordRender records one choropleth render.
func RecordRender(m *AppMetrics, indicator string) {
	if m == nil {
		return
	}
	m.ChoroplethRendersTotal.WithLabelValues(indicator).Inc()
}

// RecordLookupMiss records a value lookup that stopped at stage.
func RecordLookupMiss(m *AppMetrics, stage string) {
	if m == nil || stage == "" {
		return
	}
	m.LookupMissesTotal.WithLabelValues(stage).Inc()
}

// RecordHealth sets the health gauge of a component.
func RecordHealth(m *AppMetrics, component string, up bool) {
	if m == nil {
		return
	}
	v := 0.0
	if up {
		v = 1
	}
	m.HealthCheckStatus.WithLabelValues(component).Set(v)
}

//Personal.AI order the ending
