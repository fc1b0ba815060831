package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New()
	m.ObserveSubmission("success")
	m.ObserveSubmission("success")
	m.ObserveSubmission("validation")
	m.ObserveStoreFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues("validation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeFailures))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `quickform_submissions_total{outcome="success"} 2`)
	assert.Contains(t, rec.Body.String(), "quickform_entry_store_failures_total 1")
}
