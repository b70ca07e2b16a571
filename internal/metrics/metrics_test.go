package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveGatewayOp(t *testing.T) {
	m := New("test")

	m.ObserveGatewayOp("get_shop", "ok")
	m.ObserveGatewayOp("get_shop", "ok")
	m.ObserveGatewayOp("get_shop", "failed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.gatewayOps.WithLabelValues("test", "get_shop", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gatewayOps.WithLabelValues("test", "get_shop", "failed")))
}

func TestMetrics_ObserveEvent(t *testing.T) {
	m := New("audit")

	m.ObserveEvent("ShopCreated")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.events.WithLabelValues("audit", "ShopCreated")))
}

func TestMetrics_HandlerExposesRequests(t *testing.T) {
	m := New("test")
	m.ObserveRequest(http.MethodGet, "/shops", http.StatusOK, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/shops",service="test",status="200"} 1`)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveGatewayOp("x", "ok")
		m.ObserveRequest(http.MethodGet, "/", 200, time.Millisecond)
		m.ObserveEvent("ShopCreated")
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
