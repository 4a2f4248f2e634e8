package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/emilythestrangee/nexus/backend/internal/models"
)

func TestInstrumentedCountsOutcomes(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	ok := Instrument(&fakeBackend{rows: []models.Row{{"id": "1"}}}, m)
	_, _ = ok.List(context.Background(), models.Posts, "")
	_, _ = ok.List(context.Background(), models.Posts, "event")

	missing := Instrument(&fakeBackend{}, m)
	_, _ = missing.GetByID(context.Background(), models.LostItems, "nope")

	failing := Instrument(&fakeBackend{err: &BackendError{Message: "boom"}}, m)
	_, _ = failing.Search(context.Background(), models.Posts, "x")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("posts", "list", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("lost-items", "get", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("posts", "search", "backend_error")))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "error", Outcome(errors.New("other")))
}
