package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpfoods/hpfoods-api/pkg/metrics"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	r.Get("/api/order/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := counterValue(t, metrics.RequestTotal.WithLabelValues("GET", "/api/order/{id}", "404"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/order/5", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/order/6", nil))
	after := counterValue(t, metrics.RequestTotal.WithLabelValues("GET", "/api/order/{id}", "404"))

	assert.Equal(t, 2.0, after-before)
}

func TestRecordAuth(t *testing.T) {
	failures := metrics.AuthAttempts.WithLabelValues("login", "failure")
	before := counterValue(t, failures)
	metrics.RecordAuth("login", errors.New("nope"))
	assert.Equal(t, 1.0, counterValue(t, failures)-before)
}

func TestHandlerExposesDomainCounters(t *testing.T) {
	metrics.OrdersCreated.Inc()

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hpfoods_orders_created_total")
}
