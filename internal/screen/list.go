// Package screen holds the state machines behind the list and detail
// screens. A fetch whose sequence number is no longer the latest issued is
// dropped, so a slow stale response never overwrites a newer one.
package screen

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/emilythestrangee/nexus/backend/internal/gateway"
	"github.com/emilythestrangee/nexus/backend/internal/models"
)

type Query struct {
	Category string `json:"category"`
	Search   string `json:"search"`
}

type Snapshot[T any] struct {
	State   State  `json:"state"`
	Query   Query  `json:"query"`
	Records []T    `json:"records"`
	Message string `json:"message,omitempty"`
	Seq     uint64 `json:"seq"`
}

type ListConfig[T any] struct {
	Resource     models.Resource
	Normalize    func([]models.Row) []T
	EmptyMessage string
	ErrorMessage string
}

// List drives one list screen. Listeners run while the screen is locked
// and must not call back into it.
type List[T any] struct {
	gw  gateway.Gateway
	cfg ListConfig[T]

	mu        sync.Mutex
	query     Query
	issued    uint64
	snap      Snapshot[T]
	listeners []func(Snapshot[T])
}

func NewList[T any](gw gateway.Gateway, cfg ListConfig[T]) *List[T] {
	query := Query{Category: models.CategoryAll}
	return &List[T]{
		gw:    gw,
		cfg:   cfg,
		query: query,
		snap:  Snapshot[T]{State: Idle, Query: query, Records: []T{}},
	}
}

func (l *List[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}

// OnChange registers fn to receive every snapshot the screen applies.
func (l *List[T]) OnChange(fn func(Snapshot[T])) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, fn)
}

func (l *List[T]) SetCategory(ctx context.Context, category string) Snapshot[T] {
	l.mu.Lock()
	l.query.Category = category
	q := l.query
	l.mu.Unlock()
	return l.load(ctx, q)
}

func (l *List[T]) SetSearch(ctx context.Context, text string) Snapshot[T] {
	l.mu.Lock()
	l.query.Search = text
	q := l.query
	l.mu.Unlock()
	return l.load(ctx, q)
}

// Load replaces the whole query, as when a screen opens with parameters.
func (l *List[T]) Load(ctx context.Context, q Query) Snapshot[T] {
	l.mu.Lock()
	l.query = q
	l.mu.Unlock()
	return l.load(ctx, q)
}

func (l *List[T]) Refresh(ctx context.Context) Snapshot[T] {
	l.mu.Lock()
	q := l.query
	l.mu.Unlock()
	return l.load(ctx, q)
}

// load returns the snapshot this fetch produced, or the current one when a
// newer fetch was issued meanwhile.
func (l *List[T]) load(ctx context.Context, q Query) Snapshot[T] {
	l.mu.Lock()
	l.issued++
	seq := l.issued
	l.apply(Snapshot[T]{State: Loading, Query: q, Records: []T{}, Seq: seq})
	l.mu.Unlock()

	rows, err := l.fetch(ctx, q)

	l.mu.Lock()
	defer l.mu.Unlock()

	if seq != l.issued {
		log.Printf("Dropping stale %s result (seq %d, latest %d)", l.cfg.Resource.Name, seq, l.issued)
		return l.snap
	}

	if err != nil {
		log.Printf("⚠️ Failed to load %s (%s): %v", l.cfg.Resource.Name, gateway.Outcome(err), err)
		l.apply(Snapshot[T]{State: Error, Query: q, Records: []T{}, Message: l.cfg.ErrorMessage, Seq: seq})
		return l.snap
	}

	records := l.cfg.Normalize(rows)
	if records == nil {
		records = []T{}
	}
	next := Snapshot[T]{State: Success, Query: q, Records: records, Seq: seq}
	if len(records) == 0 {
		next.Message = l.cfg.EmptyMessage
	}
	l.apply(next)
	return l.snap
}

func (l *List[T]) fetch(ctx context.Context, q Query) ([]models.Row, error) {
	if strings.TrimSpace(q.Search) != "" {
		return l.gw.Search(ctx, l.cfg.Resource, q.Search)
	}
	return l.gw.List(ctx, l.cfg.Resource, q.Category)
}

// apply must be called with mu held.
func (l *List[T]) apply(s Snapshot[T]) {
	l.snap = s
	for _, fn := range l.listeners {
		fn(s)
	}
}
