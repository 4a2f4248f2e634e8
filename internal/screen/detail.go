package screen

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/emilythestrangee/nexus/backend/internal/gateway"
	"github.com/emilythestrangee/nexus/backend/internal/models"
)

type DetailSnapshot[T any] struct {
	State    State  `json:"state"`
	ID       string `json:"id"`
	Record   *T     `json:"record,omitempty"`
	NotFound bool   `json:"not_found"`
	Message  string `json:"message,omitempty"`
	Seq      uint64 `json:"seq"`
}

type DetailConfig[T any] struct {
	Resource        models.Resource
	Normalize       func(models.Row) T
	NotFoundMessage string
	ErrorMessage    string
}

// Detail drives a screen showing one record by id.
type Detail[T any] struct {
	gw  gateway.Gateway
	cfg DetailConfig[T]

	mu     sync.Mutex
	issued uint64
	snap   DetailSnapshot[T]
}

func NewDetail[T any](gw gateway.Gateway, cfg DetailConfig[T]) *Detail[T] {
	return &Detail[T]{gw: gw, cfg: cfg, snap: DetailSnapshot[T]{State: Idle}}
}

func (d *Detail[T]) Snapshot() DetailSnapshot[T] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snap
}

func (d *Detail[T]) Load(ctx context.Context, id string) DetailSnapshot[T] {
	d.mu.Lock()
	d.issued++
	seq := d.issued
	d.snap = DetailSnapshot[T]{State: Loading, ID: id, Seq: seq}
	d.mu.Unlock()

	row, err := d.gw.GetByID(ctx, d.cfg.Resource, id)

	d.mu.Lock()
	defer d.mu.Unlock()

	if seq != d.issued {
		return d.snap
	}

	switch {
	case errors.Is(err, gateway.ErrNotFound):
		d.snap = DetailSnapshot[T]{State: Error, ID: id, NotFound: true, Message: d.cfg.NotFoundMessage, Seq: seq}
	case err != nil:
		log.Printf("⚠️ Failed to load %s %q (%s): %v", d.cfg.Resource.Name, id, gateway.Outcome(err), err)
		d.snap = DetailSnapshot[T]{State: Error, ID: id, Message: d.cfg.ErrorMessage, Seq: seq}
	default:
		record := d.cfg.Normalize(row)
		d.snap = DetailSnapshot[T]{State: Success, ID: id, Record: &record, Seq: seq}
	}
	return d.snap
}
