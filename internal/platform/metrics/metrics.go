package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Prometheus 的 registry 不允许重复注册同名指标，否则会直接 panic。
	once sync.Once

	// HTTPRequestsTotal 累计请求数。
	// route 用路由模板（/:token），不要用真实 path，否则 label 基数无限增长。
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "HTTP请求的总数",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDurationSeconds 请求耗时分布，用于 P95/P99。
	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency distributions.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPInflightRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	ShortlinksCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shortlink_created_total",
			Help: "Short links successfully persisted.",
		},
	)

	// ShortlinkCollisions PutIfAbsent 返回已存在的次数；持续上涨说明 id 空间吃紧。
	ShortlinkCollisions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shortlink_collisions_total",
			Help: "Token collisions observed while creating short links.",
		},
	)

	ShortlinkRedirects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shortlink_redirects_total",
			Help: "Successful short link redirects.",
		},
	)

	// StoreErrors op: put | get
	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortlink_store_errors_total",
			Help: "Failures talking to the mapping store.",
		},
		[]string{"op"},
	)

	// CacheOperations layer: l1 | l2, result: hit | miss | error
	CacheOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortlink_cache_operations_total",
			Help: "Shortlink cache lookups by layer and result.",
		},
		[]string{"layer", "result"},
	)
)

// Init 注册指标：只允许注册一次（否则 panic: duplicate metrics collector registration）
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			HTTPInflightRequests,
			ShortlinksCreated,
			ShortlinkCollisions,
			ShortlinkRedirects,
			StoreErrors,
			CacheOperations,
		)
	})
}
