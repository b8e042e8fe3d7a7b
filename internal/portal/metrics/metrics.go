// Package metrics exposes Prometheus collectors for the portal: HTTP traffic
// plus chat turn outcomes, quota rejections and token consumption.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Chat turn outcomes used as the "outcome" label.
const (
	OutcomeOK           = "ok"
	OutcomeQuota        = "quota"
	OutcomeUpstream     = "upstream_error"
	OutcomeUnconfigured = "unconfigured"
	OutcomeInvalid      = "invalid"
	OutcomeError        = "error"
)

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	statusCategory  *prometheus.CounterVec
	chatTurns       *prometheus.CounterVec
	quotaRejections *prometheus.CounterVec
	tokens          *prometheus.CounterVec
}

func New(service string) *Metrics {
	constLabels := prometheus.Labels{"service": service}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests",
				ConstLabels: constLabels,
			},
			[]string{"method", "path", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "Duration of HTTP requests in seconds",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: constLabels,
			},
			[]string{"method", "path", "status"},
		),
		statusCategory: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_status_category_total",
				Help:        "Total number of responses by status category (2xx, 4xx, 5xx)",
				ConstLabels: constLabels,
			},
			[]string{"category"},
		),
		chatTurns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "portal_chat_turns_total",
				Help:        "Chat turns by outcome",
				ConstLabels: constLabels,
			},
			[]string{"outcome"},
		),
		quotaRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "portal_quota_rejections_total",
				Help:        "Chat turns refused by the daily quota, by exhausted ceiling",
				ConstLabels: constLabels,
			},
			[]string{"quota"},
		),
		tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "portal_llm_tokens_total",
				Help:        "Tokens reported by the language model backend",
				ConstLabels: constLabels,
			},
			[]string{"kind"},
		),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.statusCategory,
		m.chatTurns,
		m.quotaRejections,
		m.tokens,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ChatTurn counts one finished chat turn.
func (m *Metrics) ChatTurn(outcome string) {
	m.chatTurns.WithLabelValues(outcome).Inc()
}

// QuotaRejected counts a turn refused because the named ceiling was reached.
func (m *Metrics) QuotaRejected(quota string) {
	m.chatTurns.WithLabelValues(OutcomeQuota).Inc()
	m.quotaRejections.WithLabelValues(quota).Inc()
}

// Tokens adds backend-reported token counts.
func (m *Metrics) Tokens(prompt, completion int64) {
	if prompt > 0 {
		m.tokens.WithLabelValues("prompt").Add(float64(prompt))
	}
	if completion > 0 {
		m.tokens.WithLabelValues("completion").Add(float64(completion))
	}
}

func statusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	}
	return ""
}

// Middleware records request count and latency. It must wrap the ServeMux
// directly: the path label is the matched route pattern, which the mux sets
// on the request it receives.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rw, r)

			// Raw paths would explode cardinality, so unmatched requests share a label.
			path := r.Pattern
			if path == "" {
				path = "unmatched"
			}
			status := strconv.Itoa(rw.status)

			m.requests.WithLabelValues(r.Method, path, status).Inc()
			m.duration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
			if c := statusCategory(rw.status); c != "" {
				m.statusCategory.WithLabelValues(c).Inc()
			}
		})
	}
}

type statusWriter struct {
	http.ResponseWriter

	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
