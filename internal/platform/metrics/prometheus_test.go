package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsManager_Counters(t *testing.T) {
	m := NewMetricsManager("test")

	m.OrderPlaced("stripe")
	m.OrderPlaced("stripe")
	m.OrderPlaced("cod")
	m.CheckoutFailed("empty_cart")
	m.CacheHit()
	m.CacheMiss()
	m.CacheMiss()
	m.CatalogDegradedResponse()
	m.ObserveHTTP("/products", "GET", "200", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OrdersPlacedTotal.WithLabelValues("stripe")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersPlacedTotal.WithLabelValues("cod")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckoutFailures.WithLabelValues("empty_cart")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProductCacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ProductCacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogDegraded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/products", "GET", "200")))
}

func TestMetricsManager_NilIsSafe(t *testing.T) {
	var m *MetricsManager
	assert.NotPanics(t, func() {
		m.OrderPlaced("cod")
		m.CheckoutFailed("x")
		m.CacheHit()
		m.CacheMiss()
		m.CatalogDegradedResponse()
		m.ObserveHTTP("/", "GET", "200", time.Millisecond)
	})
}

func TestMetricsManager_Exposition(t *testing.T) {
	m := NewMetricsManager("test")
	m.OrderPlaced("cod")

	rec := httptest.NewRecorder()
	promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_orders_placed_total{payment_method="cod"} 1`)
}
