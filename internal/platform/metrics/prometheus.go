package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsManager holds the storefront's Prometheus collectors on a private registry.
type MetricsManager struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	OrdersPlacedTotal   *prometheus.CounterVec
	CheckoutFailures    *prometheus.CounterVec
	ProductCacheLookups *prometheus.CounterVec
	CatalogDegraded     prometheus.Counter
}

func NewMetricsManager(namespace string) *MetricsManager {
	registry := prometheus.NewRegistry()

	m := &MetricsManager{
		Registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		OrdersPlacedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Total number of orders persisted by payment method.",
		}, []string{"payment_method"}),
		CheckoutFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_failures_total",
			Help:      "Total number of rejected or failed checkouts by reason.",
		}, []string{"reason"}),
		ProductCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "product_cache_lookups_total",
			Help:      "Product detail cache lookups by result.",
		}, []string{"result"}),
		CatalogDegraded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_degraded_responses_total",
			Help:      "Catalog searches answered with an empty list because the store was unreachable.",
		}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.OrdersPlacedTotal,
		m.CheckoutFailures,
		m.ProductCacheLookups,
		m.CatalogDegraded,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// The helpers below tolerate a nil manager so services can run without metrics.

func (m *MetricsManager) ObserveHTTP(route, method, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(route, method, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (m *MetricsManager) OrderPlaced(paymentMethod string) {
	if m == nil {
		return
	}
	m.OrdersPlacedTotal.WithLabelValues(paymentMethod).Inc()
}

func (m *MetricsManager) CheckoutFailed(reason string) {
	if m == nil {
		return
	}
	m.CheckoutFailures.WithLabelValues(reason).Inc()
}

func (m *MetricsManager) CacheHit() {
	if m == nil {
		return
	}
	m.ProductCacheLookups.WithLabelValues("hit").Inc()
}

func (m *MetricsManager) CacheMiss() {
	if m == nil {
		return
	}
	m.ProductCacheLookups.WithLabelValues("miss").Inc()
}

func (m *MetricsManager) CatalogDegradedResponse() {
	if m == nil {
		return
	}
	m.CatalogDegraded.Inc()
}

// Server exposes /metrics for a registry on its own port.
type Server struct {
	server *http.Server
	log    logger.Logger
}

func NewServer(port string, registry *prometheus.Registry, log logger.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	return &Server{
		server: &http.Server{
			Addr:              ":" + port,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
}

func (s *Server) Start() error {
	s.log.Infof("Prometheus metrics server starting on %s/metrics", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
