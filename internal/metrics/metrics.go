package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"sync"
)

var (
	LoggedProblems = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_logged_problems_total",
			Help: "Warnings and errors written to the log, by error type and level.",
		},
		[]string{"type", "level"},
	)
	ReportRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_report_requests_total",
			Help: "Total number of report requests by outcome.",
		},
		[]string{"report", "outcome"},
	)
	ReportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_report_duration_seconds",
			Help:    "Time spent computing a report, cache lookups included.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"report"},
	)
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_cache_lookups_total",
			Help: "Report cache lookups by result.",
		},
		[]string{"result"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "Total number of handled HTTP requests.",
		},
		[]string{"method", "status"},
	)
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeInvalid = "invalid"

	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(LoggedProblems)
		prometheus.MustRegister(ReportRequests)
		prometheus.MustRegister(ReportDuration)
		prometheus.MustRegister(CacheLookups)
		prometheus.MustRegister(HTTPRequests)
	})
}

func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}
