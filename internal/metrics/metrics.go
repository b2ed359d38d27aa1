package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EndpointResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uns_endpoint_responses_total",
		Help: "The total number of HTTP endpoint responses",
	}, []string{"endpoint", "status_code"})

	// JSON-RPC
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uns_rpc_requests_total",
		Help: "The total number of JSON-RPC calls by method and outcome",
	}, []string{"method", "outcome"})

	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "uns_rpc_duration_ms",
		Help:    "Duration of JSON-RPC calls in milliseconds",
		Buckets: prometheus.ExponentialBuckets(1, 2, 15),
	}, []string{"method"})

	// Resolution
	LayerResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uns_layer_results_total",
		Help: "Per-layer answers by operation and outcome",
	}, []string{"layer", "operation", "outcome"})

	// Metadata cache
	MetadataCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uns_metadata_cache_lookups_total",
		Help: "Token metadata cache lookups by result",
	}, []string{"result"})
)

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Outcome maps err to an outcome label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
