// Package telemetry exports dispatch outcomes as Prometheus metrics.
package telemetry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dshills/cascade/internal/cascade"
)

const metricsPath = "/metrics"

// Metrics counts dispatch cycles. It implements cascade.Observer.
type Metrics struct {
	registry *prometheus.Registry

	notifications *prometheus.CounterVec
	mode          *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with registry.
func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		registry: registry,
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cascade_notifications_total",
				Help: "Display notifications received by a propagator, by kind and result",
			},
			[]string{"kind", "result"},
		),
		mode: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cascade_propagation_mode",
				Help: "1 for the propagation mode seen on the most recent dispatch",
			},
			[]string{"mode"},
		),
	}

	for _, c := range []prometheus.Collector{m.notifications, m.mode} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe implements cascade.Observer.
func (m *Metrics) Observe(out cascade.Outcome) {
	m.notifications.WithLabelValues(out.Kind.String(), out.Result.String()).Inc()

	other := out.Mode.Toggle()
	m.mode.WithLabelValues(out.Mode.String()).Set(1)
	m.mode.WithLabelValues(other.String()).Set(0)
}

// Handler returns an HTTP handler serving the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Server serves the metrics endpoint.
type Server struct {
	srv *http.Server
	ln  net.Listener
}

// Serve starts an HTTP server on addr exposing /metrics.
func (m *Metrics) Serve(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(metricsPath, m.Handler())

	s := &Server{
		srv: &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		ln:  ln,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = ln.Close()
		}
	}()
	return s, nil
}

// Addr returns the listening address.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Shutdown stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
