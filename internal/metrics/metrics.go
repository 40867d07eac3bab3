package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is what the service layers report into.
type Recorder interface {
	ObserveToolCall(tool string, duration time.Duration, err error)
	ObserveProviderRequest(endpoint, outcome string, duration time.Duration)
	ObserveCacheLookup(result string)
	SetBreakerState(name string, state int)
}

type PrometheusMetrics struct {
	toolCalls        *prometheus.CounterVec
	toolDuration     *prometheus.HistogramVec
	providerRequests *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	cacheLookups     *prometheus.CounterVec
	breakerState     *prometheus.GaugeVec
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		toolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightmcp_tool_calls_total",
				Help: "Total number of tool calls by tool and status",
			},
			[]string{"tool", "status"},
		),
		toolDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightmcp_tool_call_duration_seconds",
				Help:    "Duration of tool calls in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"tool", "status"},
		),
		providerRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightmcp_provider_requests_total",
				Help: "Total number of requests sent to the flight provider",
			},
			[]string{"endpoint", "outcome"},
		),
		providerDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightmcp_provider_request_duration_seconds",
				Help:    "Latency of flight provider requests in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2, 3, 5},
			},
			[]string{"endpoint", "outcome"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightmcp_cache_lookups_total",
				Help: "Search cache lookups by result",
			},
			[]string{"result"},
		),
		breakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flightmcp_circuit_breaker_state",
				Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
			[]string{"name"},
		),
	}
}

func (p *PrometheusMetrics) ObserveToolCall(tool string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	p.toolCalls.WithLabelValues(tool, status).Inc()
	p.toolDuration.WithLabelValues(tool, status).Observe(duration.Seconds())
}

func (p *PrometheusMetrics) ObserveProviderRequest(endpoint, outcome string, duration time.Duration) {
	p.providerRequests.WithLabelValues(endpoint, outcome).Inc()
	p.providerDuration.WithLabelValues(endpoint, outcome).Observe(duration.Seconds())
}

func (p *PrometheusMetrics) ObserveCacheLookup(result string) {
	p.cacheLookups.WithLabelValues(result).Inc()
}

func (p *PrometheusMetrics) SetBreakerState(name string, state int) {
	p.breakerState.WithLabelValues(name).Set(float64(state))
}

type Noop struct{}

func (Noop) ObserveToolCall(string, time.Duration, error)         {}
func (Noop) ObserveProviderRequest(string, string, time.Duration) {}
func (Noop) ObserveCacheLookup(string)                            {}
func (Noop) SetBreakerState(string, int)                          {}
