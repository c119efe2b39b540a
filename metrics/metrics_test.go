package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveAsk("ok", 120*time.Millisecond)
	m.SetSessions(3)
	m.ObserveIngestion("url", "accepted")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `growthvision_backend_asks_total{outcome="ok"} 1`)
	assert.Contains(t, body, "growthvision_sessions_active 3")
	assert.Contains(t, body, `growthvision_ingestion_submissions_total{mode="url",result="accepted"} 1`)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAsk("ok", time.Second)
		m.SetSessions(1)
		m.ObserveIngestion("text", "failed")
	})
	assert.NotNil(t, m.Handler())
}
