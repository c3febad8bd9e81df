package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	upstreamRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventsfinder",
		Name:      "upstream_requests_total",
		Help:      "Upstream search requests by response status (0 = transport error)",
	}, []string{"source", "status"})

	searchOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventsfinder",
		Name:      "search_outcomes_total",
		Help:      "Search results by outcome",
	}, []string{"source", "outcome"})

	searchFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventsfinder",
		Name:      "search_fallbacks_total",
		Help:      "Fallback retries taken during a search",
	}, []string{"source", "kind"})

	searchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "eventsfinder",
		Name:      "search_duration_seconds",
		Help:      "End-to-end search latency including fallbacks",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	syncedEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventsfinder",
		Name:      "synced_events_total",
		Help:      "Events upserted by sync runs",
	}, []string{"source"})

	registerOnce sync.Once
)

// Register 注册到指定 registry，只生效一次
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(upstreamRequests, searchOutcomes, searchFallbacks, searchDuration, syncedEvents)
	})
}

// UpstreamRequest 记录一次上游请求
func UpstreamRequest(source string, status int) {
	upstreamRequests.WithLabelValues(source, strconv.Itoa(status)).Inc()
}

// SearchOutcome 记录一次查询的最终结果
func SearchOutcome(source, outcome string, started time.Time) {
	searchOutcomes.WithLabelValues(source, outcome).Inc()
	searchDuration.WithLabelValues(source).Observe(time.Since(started).Seconds())
}

// Fallback 记录一次兜底重试
func Fallback(source, kind string) {
	searchFallbacks.WithLabelValues(source, kind).Inc()
}

// Synced 记录导入条数
func Synced(source string, n int) {
	syncedEvents.WithLabelValues(source).Add(float64(n))
}
