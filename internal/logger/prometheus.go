package logger

import (
	"github.com/maxaizer/job-market-api/internal/metrics"
	log "github.com/sirupsen/logrus"
)

// prometheusHook counts warnings and errors by error_type. Cache failures are
// logged as warnings and never fail a request, so this is where they surface.
type prometheusHook struct{}

func (h *prometheusHook) Fire(entry *log.Entry) error {
	problemType, ok := entry.Data[ErrorTypeField].(string)
	if !ok {
		problemType = "unknown"
	}

	metrics.LoggedProblems.WithLabelValues(problemType, entry.Level.String()).Inc()
	return nil
}

func (h *prometheusHook) Levels() []log.Level {
	return []log.Level{
		log.WarnLevel,
		log.ErrorLevel,
		log.FatalLevel,
		log.PanicLevel,
	}
}

func addPrometheusHook() {
	log.AddHook(&prometheusHook{})
	log.Debug("Prometheus problem hook enabled")
}
