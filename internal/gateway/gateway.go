// Package gateway reads community posts and lost items from the hosted
// backend. It never writes, caches, or retries.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emilythestrangee/nexus/backend/internal/models"
	"github.com/emilythestrangee/nexus/backend/internal/readiness"
)

var (
	// ErrBackendUnavailable means the backend client never became ready.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrNotFound means a by-id lookup matched zero rows.
	ErrNotFound = errors.New("not found")
)

// BackendError is a failure reported by the remote call itself.
type BackendError struct {
	Status  int
	Code    string
	Message string
	Details string
	Hint    string
	Err     error
}

func (e *BackendError) Error() string {
	var b strings.Builder
	b.WriteString("backend error")
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Code != "" {
		fmt.Fprintf(&b, " [%s]", e.Code)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Gateway is the read contract shared by every backend. Rows come back
// newest first.
type Gateway interface {
	// List returns every row of res, filtered by category unless category
	// is blank or "all".
	List(ctx context.Context, res models.Resource, category string) ([]models.Row, error)
	// Search matches text case-insensitively against the title and the
	// resource's text column. Blank text lists without a filter.
	Search(ctx context.Context, res models.Resource, text string) ([]models.Row, error)
	// GetByID returns ErrNotFound when no row has the given id.
	GetByID(ctx context.Context, res models.Resource, id string) (models.Row, error)
}

// Backend is a Gateway that can also be probed for reachability.
type Backend interface {
	Gateway
	Ping(ctx context.Context) error
}

// Remote defers every call until the backend handle is settled, then
// delegates with a per-call timeout.
type Remote struct {
	handle  *readiness.Handle[Gateway]
	timeout time.Duration
}

func NewRemote(handle *readiness.Handle[Gateway], timeout time.Duration) *Remote {
	return &Remote{handle: handle, timeout: timeout}
}

func (r *Remote) List(ctx context.Context, res models.Resource, category string) ([]models.Row, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	gw, err := r.await(ctx)
	if err != nil {
		return nil, err
	}
	return gw.List(ctx, res, category)
}

func (r *Remote) Search(ctx context.Context, res models.Resource, text string) ([]models.Row, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	gw, err := r.await(ctx)
	if err != nil {
		return nil, err
	}
	return gw.Search(ctx, res, text)
}

func (r *Remote) GetByID(ctx context.Context, res models.Resource, id string) (models.Row, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	gw, err := r.await(ctx)
	if err != nil {
		return nil, err
	}
	return gw.GetByID(ctx, res, id)
}

// Status reports the readiness of the underlying backend.
func (r *Remote) Status() readiness.Status {
	return r.handle.Status()
}

func (r *Remote) await(ctx context.Context) (Gateway, error) {
	gw, err := r.handle.Wait(ctx)
	if err == nil {
		return gw, nil
	}
	if errors.Is(err, ErrBackendUnavailable) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
}

// emptyIfNil keeps "no rows" distinguishable from a failed call.
func emptyIfNil(rows []models.Row) []models.Row {
	if rows == nil {
		return []models.Row{}
	}
	return rows
}
