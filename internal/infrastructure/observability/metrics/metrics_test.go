package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAreIsolatedPerInstance(t *testing.T) {
	a := New()
	b := New()

	a.SubmissionRecorded(ResultSuccess)
	a.SubmissionRecorded(ResultSuccess)
	a.SubmissionRecorded(ResultInvalid)

	assert.Equal(t, 2.0, testutil.ToFloat64(a.submissionsTotal.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.submissionsTotal.WithLabelValues(ResultInvalid)))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.submissionsTotal.WithLabelValues(ResultSuccess)))
}

func TestObserveRequestUsesUnmatchedLabel(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "", "404", 0.01)
	m.ObserveRequest(http.MethodGet, "/api/v1/submissions/:id", "200", 0.02)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues(http.MethodGet, UnmatchedPath, "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/submissions/:id", "200")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.LoginAttempted(ResultUnauthorized)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `caseeval_logins_total{result="unauthorized"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
