package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cardsapi"

var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notion_requests_total",
		Help:      "Notion database queries by HTTP status (0 for transport errors).",
	}, []string{"status"})

	UpstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notion_request_duration_seconds",
		Help:      "Latency of Notion database queries.",
		Buckets:   prometheus.DefBuckets,
	})

	RecordsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_dropped_total",
		Help:      "Records left out of a response, by reason.",
	}, []string{"reason"})

	ItemsServed = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "items_served",
		Help:      "Number of items in each successful response.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Served HTTP requests by route and status.",
	}, []string{"route", "status"})
)

// ObserveUpstream records one Notion call.
func ObserveUpstream(status int, started time.Time) {
	UpstreamRequests.WithLabelValues(strconv.Itoa(status)).Inc()
	UpstreamDuration.Observe(time.Since(started).Seconds())
}

func ObserveHTTP(route string, status int) {
	HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
