package api

import (
	"context"
	"github.com/goccy/go-json"
	"github.com/maxaizer/job-market-api/internal/cache"
	"github.com/maxaizer/job-market-api/internal/logger"
	"github.com/maxaizer/job-market-api/internal/metrics"
	"github.com/pkg/errors"
	"net/http"
	"time"
)

// ReportExecutor runs a report for a request and renders the envelope. When a
// cache store is set, encoded payloads are served from it until they expire.
type ReportExecutor struct {
	cache      cache.Store
	ttl        time.Duration
	production bool
	params     *paramsParser
}

func NewReportExecutor(store cache.Store, ttl time.Duration, production bool) *ReportExecutor {
	return &ReportExecutor{
		cache:      store,
		ttl:        ttl,
		production: production,
		params:     newParamsParser(),
	}
}

func (e *ReportExecutor) Handler(report Report) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		entry := requestLogger(r).WithField("report", report.Name)

		params, err := e.params.parse(r, report)
		if err != nil {
			metrics.ReportRequests.WithLabelValues(report.Name, metrics.OutcomeInvalid).Inc()
			entry.Debugf("rejected report parameters: %v", err)
			respondFailure(w, http.StatusBadRequest, report.FailureMessage, err, false)
			return
		}

		key := params.cacheKey(report)
		if data, ok := e.lookup(r.Context(), key); ok {
			e.observe(report, start, metrics.OutcomeSuccess)
			respondData(w, report.SuccessMessage, data)
			return
		}

		payload, err := report.Compute(r.Context(), params)
		if err != nil {
			e.observe(report, start, metrics.OutcomeFailure)
			entry.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to compute report: %v", err)
			respondFailure(w, http.StatusInternalServerError, report.FailureMessage, err, e.production)
			return
		}

		data, err := json.Marshal(payload)
		if err != nil {
			e.observe(report, start, metrics.OutcomeFailure)
			entry.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Errorf("failed to encode report: %v", err)
			respondFailure(w, http.StatusInternalServerError, report.FailureMessage, err, e.production)
			return
		}

		e.store(r.Context(), key, data)
		e.observe(report, start, metrics.OutcomeSuccess)
		respondData(w, report.SuccessMessage, data)
	}
}

func (e *ReportExecutor) lookup(ctx context.Context, key string) ([]byte, bool) {
	if e.cache == nil {
		return nil, false
	}

	data, err := e.cache.Get(ctx, key)
	switch {
	case err == nil:
		metrics.CacheLookups.WithLabelValues(metrics.CacheHit).Inc()
		return data, true
	case errors.Is(err, cache.ErrNotFound):
		metrics.CacheLookups.WithLabelValues(metrics.CacheMiss).Inc()
	default:
		metrics.CacheLookups.WithLabelValues(metrics.CacheError).Inc()
		loggerFor(ctx).WithField(logger.ErrorTypeField, logger.ErrorTypeCache).
			Warnf("failed to read cached report %s: %v", key, err)
	}
	return nil, false
}

func (e *ReportExecutor) store(ctx context.Context, key string, data []byte) {
	if e.cache == nil {
		return
	}

	if err := e.cache.Set(ctx, key, data, e.ttl); err != nil {
		loggerFor(ctx).WithField(logger.ErrorTypeField, logger.ErrorTypeCache).
			Warnf("failed to cache report %s: %v", key, err)
	}
}

func (e *ReportExecutor) observe(report Report, start time.Time, outcome string) {
	metrics.ReportRequests.WithLabelValues(report.Name, outcome).Inc()
	metrics.ReportDuration.WithLabelValues(report.Name).Observe(time.Since(start).Seconds())
}
