package gateway

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/nexus/backend/internal/models"
	"github.com/emilythestrangee/nexus/backend/internal/readiness"
)

type fakeBackend struct {
	rows      []models.Row
	err       error
	pingErrs  int32
	pingCalls atomic.Int32
}

func (f *fakeBackend) Ping(ctx context.Context) error {
	n := f.pingCalls.Add(1)
	if n <= atomic.LoadInt32(&f.pingErrs) {
		return errors.New("connection refused")
	}
	return nil
}

func (f *fakeBackend) List(ctx context.Context, res models.Resource, category string) ([]models.Row, error) {
	return f.rows, f.err
}

func (f *fakeBackend) Search(ctx context.Context, res models.Resource, text string) ([]models.Row, error) {
	return f.rows, f.err
}

func (f *fakeBackend) GetByID(ctx context.Context, res models.Resource, id string) (models.Row, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.rows) == 0 {
		return nil, ErrNotFound
	}
	return f.rows[0], nil
}

func TestRemoteDelegatesOnceReady(t *testing.T) {
	handle := readiness.New[Gateway]()
	backend := &fakeBackend{rows: []models.Row{{"id": "1"}}}
	remote := NewRemote(handle, time.Second)

	go func() {
		time.Sleep(10 * time.Millisecond)
		handle.Resolve(backend)
	}()

	rows, err := remote.List(context.Background(), models.Posts, "all")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, readiness.Ready, remote.Status())
}

func TestRemoteNotReadyIsUnavailable(t *testing.T) {
	handle := readiness.New[Gateway]()
	remote := NewRemote(handle, 20*time.Millisecond)

	_, err := remote.Search(context.Background(), models.Posts, "bike")
	assert.ErrorIs(t, err, ErrBackendUnavailable)
	assert.Equal(t, "unavailable", Outcome(err))
}

func TestRemoteFailedHandleIsUnavailable(t *testing.T) {
	handle := readiness.New[Gateway]()
	handle.Fail(errors.New("probe exhausted"))
	remote := NewRemote(handle, time.Second)

	_, err := remote.GetByID(context.Background(), models.LostItems, "x")
	assert.ErrorIs(t, err, ErrBackendUnavailable)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestInitializeResolvesAfterRetries(t *testing.T) {
	handle := readiness.New[Gateway]()
	backend := &fakeBackend{pingErrs: 2}

	Initialize(context.Background(), handle, backend, 5*time.Second)

	gw, err := handle.Wait(context.Background())
	require.NoError(t, err)
	assert.Same(t, backend, gw)
	assert.Equal(t, int32(3), backend.pingCalls.Load())
}

func TestInitializeExhaustsBudget(t *testing.T) {
	handle := readiness.New[Gateway]()
	backend := &fakeBackend{pingErrs: 1 << 30}

	Initialize(context.Background(), handle, backend, 300*time.Millisecond)

	_, err := handle.Wait(context.Background())
	assert.ErrorIs(t, err, ErrBackendUnavailable)
	assert.Equal(t, readiness.Failed, handle.Status())

	remote := NewRemote(handle, time.Second)
	rows, err := remote.List(context.Background(), models.LostFoundItems, "")
	assert.ErrorIs(t, err, ErrBackendUnavailable)
	assert.Nil(t, rows)
}

func TestBackendErrorMessage(t *testing.T) {
	err := &BackendError{Status: 503, Code: "PGRST000", Message: "could not connect"}
	assert.Equal(t, "backend error (status 503) [PGRST000]: could not connect", err.Error())

	cause := context.DeadlineExceeded
	wrapped := &BackendError{Message: cause.Error(), Err: cause}
	assert.ErrorIs(t, wrapped, context.DeadlineExceeded)
}
