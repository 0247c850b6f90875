// Package metrics exposes execution and HTTP counters in Prometheus format
// and keeps a per-service snapshot for the stats endpoint.
package metrics

import (
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"ai-forms/internal/application/port/output"
	"ai-forms/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ output.MetricsPort = (*Metrics)(nil)

const namespace = "aiforms"

type Metrics struct {
	registry *prometheus.Registry

	Executions        *prometheus.CounterVec
	ExecutionDuration *prometheus.HistogramVec
	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec

	startTime time.Time

	mu    sync.RWMutex
	stats map[entity.ServiceID]*ServiceStats
}

// ServiceStats counts executions of one service by outcome.
type ServiceStats struct {
	Service         entity.ServiceID `json:"service"`
	Total           int64            `json:"total"`
	Success         int64            `json:"success"`
	ValidationError int64            `json:"validation_error"`
	TransportError  int64            `json:"transport_error"`
	TotalDuration   time.Duration    `json:"-"`
	AvgDurationMS   float64          `json:"avg_duration_ms"`
}

type Snapshot struct {
	Uptime     string         `json:"uptime"`
	Executions int64          `json:"executions"`
	Services   []ServiceStats `json:"services"`
}

// New uses its own registry so several instances can coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry:  reg,
		startTime: time.Now(),
		stats:     make(map[entity.ServiceID]*ServiceStats),

		Executions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "service_executions_total",
				Help:      "Total number of service executions by outcome",
			},
			[]string{"service", "outcome"},
		),
		ExecutionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "service_execution_duration_seconds",
				Help:      "Service execution duration in seconds",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"service"},
		),
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "route"},
		),
	}
}

func (m *Metrics) RecordExecution(id entity.ServiceID, kind entity.OutcomeKind, duration time.Duration) {
	m.Executions.WithLabelValues(string(id), string(kind)).Inc()
	m.ExecutionDuration.WithLabelValues(string(id)).Observe(duration.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.stats[id]
	if !ok {
		s = &ServiceStats{Service: id}
		m.stats[id] = s
	}
	s.Total++
	s.TotalDuration += duration
	switch kind {
	case entity.OutcomeSuccess:
		s.Success++
	case entity.OutcomeValidationError:
		s.ValidationError++
	case entity.OutcomeTransportError:
		s.TransportError++
	}
}

func (m *Metrics) RecordRequest(method, route string, status int, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		Uptime:   time.Since(m.startTime).Round(time.Second).String(),
		Services: make([]ServiceStats, 0, len(m.stats)),
	}
	for _, s := range m.stats {
		c := *s
		if c.Total > 0 {
			c.AvgDurationMS = float64(c.TotalDuration.Microseconds()) / 1000 / float64(c.Total)
		}
		snap.Executions += c.Total
		snap.Services = append(snap.Services, c)
	}
	sort.Slice(snap.Services, func(i, j int) bool {
		return snap.Services[i].Service < snap.Services[j].Service
	})
	return snap
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
