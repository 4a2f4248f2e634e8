package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/emilythestrangee/nexus/backend/internal/models"
)

type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nexus_gateway_requests_total",
			Help: "Gateway calls by resource, operation and outcome.",
		}, []string{"resource", "op", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nexus_gateway_request_duration_seconds",
			Help:    "Gateway call latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"resource", "op"}),
	}
}

// Instrumented records a counter and a latency sample for every call.
type Instrumented struct {
	next    Gateway
	metrics *Metrics
}

func Instrument(next Gateway, m *Metrics) *Instrumented {
	return &Instrumented{next: next, metrics: m}
}

func (g *Instrumented) List(ctx context.Context, res models.Resource, category string) ([]models.Row, error) {
	start := time.Now()
	rows, err := g.next.List(ctx, res, category)
	g.observe(res, "list", start, err)
	return rows, err
}

func (g *Instrumented) Search(ctx context.Context, res models.Resource, text string) ([]models.Row, error) {
	start := time.Now()
	rows, err := g.next.Search(ctx, res, text)
	g.observe(res, "search", start, err)
	return rows, err
}

func (g *Instrumented) GetByID(ctx context.Context, res models.Resource, id string) (models.Row, error) {
	start := time.Now()
	row, err := g.next.GetByID(ctx, res, id)
	g.observe(res, "get", start, err)
	return row, err
}

func (g *Instrumented) observe(res models.Resource, op string, start time.Time, err error) {
	g.metrics.duration.WithLabelValues(res.Name, op).Observe(time.Since(start).Seconds())
	g.metrics.requests.WithLabelValues(res.Name, op, Outcome(err)).Inc()
}

// Outcome classifies err into the gateway's error taxonomy.
func Outcome(err error) string {
	var backendErr *BackendError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrBackendUnavailable):
		return "unavailable"
	case errors.As(err, &backendErr):
		return "backend_error"
	default:
		return "error"
	}
}
