package api

import (
	"context"
	"github.com/goccy/go-json"
	"github.com/maxaizer/job-market-api/internal/cache"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
	Path    string          `json:"path"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var body response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func serve(executor *ReportExecutor, report Report, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	executor.Handler(report).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("cache down")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("cache down")
}

func (failingStore) Close() error {
	return nil
}

func Test_Executor_Success_WrapsPayload(t *testing.T) {
	report := Report{Name: "trends", SuccessMessage: "Posting trends retrieved successfully",
		Compute: func(ctx context.Context, _ Params) (any, error) {
			return []map[string]int{{"count": 2}}, nil
		}}

	rec := serve(NewReportExecutor(nil, 0, false), report, "/trends")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "Posting trends retrieved successfully", body.Message)
	assert.JSONEq(t, `[{"count":2}]`, string(body.Data))
	assert.Nil(t, body.Error)
}

func Test_Executor_EmptyList_IsRenderedAsArray(t *testing.T) {
	report := Report{Name: "charts/top-skills", Compute: func(ctx context.Context, _ Params) (any, error) {
		return []string{}, nil
	}}

	rec := serve(NewReportExecutor(nil, 0, false), report, "/skills")

	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
}

func Test_Executor_ComputeFailure_RendersFailureEnvelope(t *testing.T) {
	report := Report{Name: "summary/total-jobs", FailureMessage: "Failed to fetch total jobs data",
		Compute: func(ctx context.Context, _ Params) (any, error) {
			return nil, errors.New("connection refused")
		}}

	rec := serve(NewReportExecutor(nil, 0, false), report, "/total")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Failed to fetch total jobs data","error":"connection refused"}`,
		rec.Body.String())
}

func Test_Executor_ComputeFailureInProduction_HidesDetail(t *testing.T) {
	report := Report{Name: "summary", FailureMessage: "Failed to retrieve dashboard summary",
		Compute: func(ctx context.Context, _ Params) (any, error) {
			return nil, errors.New("pq: password authentication failed")
		}}

	rec := serve(NewReportExecutor(nil, 0, true), report, "/summary")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "Something went wrong", *body.Error)
}

func Test_Executor_Limit(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		status   int
		expected int
	}{
		{"missing uses default", "", http.StatusOK, 5},
		{"empty uses default", "?limit=", http.StatusOK, 5},
		{"zero uses default", "?limit=0", http.StatusOK, 5},
		{"explicit", "?limit=3", http.StatusOK, 3},
		{"upper bound", "?limit=100", http.StatusOK, 100},
		{"above bound", "?limit=101", http.StatusBadRequest, 0},
		{"negative", "?limit=-1", http.StatusBadRequest, 0},
		{"not a number", "?limit=ten", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			received := 0
			report := Report{Name: "industries", DefaultLimit: 5, FailureMessage: "Failed to retrieve industries",
				Compute: func(ctx context.Context, params Params) (any, error) {
					received = params.Limit
					return []string{}, nil
				}}

			rec := serve(NewReportExecutor(nil, 0, false), report, "/industries"+tt.query)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.expected, received)
			if tt.status == http.StatusBadRequest {
				body := decode(t, rec)
				assert.False(t, body.Success)
				assert.Equal(t, "Failed to retrieve industries", body.Message)
				require.NotNil(t, body.Error)
				assert.Contains(t, *body.Error, "invalid query parameters")
			}
		})
	}
}

func Test_Executor_CacheHit_SkipsCompute(t *testing.T) {
	calls := 0
	report := Report{Name: "industries", DefaultLimit: 5, Compute: func(ctx context.Context, params Params) (any, error) {
		calls++
		return []int{params.Limit}, nil
	}}
	executor := NewReportExecutor(cache.NewMemory(time.Minute), time.Minute, false)

	first := serve(executor, report, "/industries?limit=2")
	second := serve(executor, report, "/industries?limit=2")
	other := serve(executor, report, "/industries")

	assert.Equal(t, 2, calls)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.JSONEq(t, `[5]`, string(decode(t, other).Data))
}

func Test_Executor_CacheFailure_StillServesReport(t *testing.T) {
	report := Report{Name: "trends", Compute: func(ctx context.Context, _ Params) (any, error) {
		return []int{1}, nil
	}}

	rec := serve(NewReportExecutor(failingStore{}, time.Minute, false), report, "/trends")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[1]`, string(decode(t, rec).Data))
}
