package gateway

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/emilythestrangee/nexus/backend/internal/readiness"
)

// Initialize probes backend until it answers or budget runs out, then
// settles handle. It is the handle's only writer.
func Initialize(ctx context.Context, handle *readiness.Handle[Gateway], backend Backend, budget time.Duration) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 100 * time.Millisecond
	policy.MaxInterval = time.Second
	policy.MaxElapsedTime = budget

	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	attempts := 0
	err := backoff.Retry(func() error {
		attempts++
		return backend.Ping(ctx)
	}, backoff.WithContext(policy, ctx))

	if err != nil {
		log.Printf("⚠️ Backend not ready after %d attempts: %v", attempts, err)
		handle.Fail(fmt.Errorf("%w: %w", ErrBackendUnavailable, err))
		return
	}

	log.Printf("✅ Backend ready after %d attempt(s)", attempts)
	handle.Resolve(backend)
}
