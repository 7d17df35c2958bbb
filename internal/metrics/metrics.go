package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hdpay"

// Service owns a private prometheus registry and the collectors of the wallet
// core. All methods are safe on a nil *Service, which records nothing.
type Service struct {
	registry *prometheus.Registry

	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	fallbacks        *prometheus.CounterVec
	addressesIssued  *prometheus.CounterVec
	providerReady    *prometheus.GaugeVec
	allocatorCurrent *prometheus.GaugeVec

	// nextIndex keeps allocatorCurrent monotonic under concurrent updates.
	nextIndexMu sync.Mutex
	nextIndex   map[string]uint32
}

// New creates the collectors and registers them, together with the go runtime
// and process collectors, on a fresh registry.
func New() (*Service, error) {
	s := &Service{
		registry:  prometheus.NewRegistry(),
		nextIndex: make(map[string]uint32),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Chain RPC requests by source, method and outcome.",
		}, []string{"source", "method", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_request_duration_seconds",
			Help:      "Chain RPC request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source", "method"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "read_fallbacks_total",
			Help:      "Reads answered by the fallback source after the primary failed.",
		}, []string{"currency", "operation"}),
		addressesIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "addresses_issued_total",
			Help:      "Receiving addresses handed out.",
		}, []string{"currency", "source"}),
		providerReady: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "provider_ready",
			Help:      "1 once the currency provider finished initialization.",
		}, []string{"currency"}),
		allocatorCurrent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "allocator_next_index",
			Help:      "Next derivation index per currency.",
		}, []string{"currency"}),
	}

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		s.requests,
		s.requestDuration,
		s.fallbacks,
		s.addressesIssued,
		s.providerReady,
		s.allocatorCurrent,
	} {
		if err := s.registry.Register(c); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Registry exposes the underlying registry, mostly for tests.
func (s *Service) Registry() *prometheus.Registry {
	if s == nil {
		return nil
	}

	return s.registry
}

// Handler serves the registry in the prometheus exposition format.
func (s *Service) Handler() http.Handler {
	if s == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}

// ObserveRequest records a finished RPC request.
func (s *Service) ObserveRequest(source string, method string, outcome string, elapsed time.Duration) {
	if s == nil {
		return
	}

	s.requests.WithLabelValues(source, method, outcome).Inc()
	s.requestDuration.WithLabelValues(source, method).Observe(elapsed.Seconds())
}

func (s *Service) IncFallback(currency string, operation string) {
	if s == nil {
		return
	}

	s.fallbacks.WithLabelValues(currency, operation).Inc()
}

func (s *Service) IncAddressIssued(currency string, source string) {
	if s == nil {
		return
	}

	s.addressesIssued.WithLabelValues(currency, source).Inc()
}

func (s *Service) SetProviderReady(currency string, ready bool) {
	if s == nil {
		return
	}

	v := 0.0
	if ready {
		v = 1
	}
	s.providerReady.WithLabelValues(currency).Set(v)
}

// SetNextIndex raises the next index gauge of currency to next. Lower values,
// from callers that lost a race, are ignored.
func (s *Service) SetNextIndex(currency string, next uint32) {
	if s == nil {
		return
	}

	s.nextIndexMu.Lock()
	defer s.nextIndexMu.Unlock()

	if cur, ok := s.nextIndex[currency]; ok && next <= cur {
		return
	}
	s.nextIndex[currency] = next
	s.allocatorCurrent.WithLabelValues(currency).Set(float64(next))
}
