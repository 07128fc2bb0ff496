package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/dealflow/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Handler(t *testing.T) {
	c := metrics.NewCollector("dealflow")
	c.StageTransitions.WithLabelValues("Sourced", "Screen").Inc()
	c.DealsCreated.Inc()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `dealflow_deal_stage_transitions_total{from="Sourced",to="Screen"} 1`)
	assert.Contains(t, string(body), "dealflow_deals_created_total 1")
}

func TestNewCollector_Independent(t *testing.T) {
	a := metrics.NewCollector("dealflow")
	b := metrics.NewCollector("dealflow")
	a.MemoVersions.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.MemoVersions))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.MemoVersions))
}
