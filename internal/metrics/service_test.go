package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncTeamsGenerated()
	s.IncTeamsGenerated()
	s.IncNotifSent("telegram")
	s.IncNotifFailed("slack")
	s.ObserveGenerationAttempts(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.TeamsGenerated))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.NotifSent.WithLabelValues("telegram")))
	assert.Equal(t, 0.0, testutil.ToFloat64(s.NotifSent.WithLabelValues("slack")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.NotifFailed.WithLabelValues("slack")))

	rec := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "kickabout_teams_generated_total 2")
	assert.Contains(t, rec.Body.String(), "kickabout_generation_attempts_count 1")
}
