package reconcile

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/meshops/meshsvc/mesh"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Default waiter timing.
const (
	DefaultMinDelay = 15 * time.Second
	DefaultMaxDelay = 120 * time.Second
	DefaultMaxWait  = 600 * time.Second
)

// A Waiter polls the remote API until a deleted virtual service is confirmed
// absent. It is used after the delete call has been accepted; the delete
// itself is never retried, only its completion is awaited.
type Waiter struct {
	API mesh.API

	// Logger logs poll attempts. If not set, logs are discarded.
	Logger *zap.Logger

	// MinDelay is the initial delay between polls. Defaults to 15s.
	MinDelay time.Duration

	// MaxDelay caps the growing delay between polls. Defaults to 120s.
	MaxDelay time.Duration

	// MaxWait bounds the cumulative wait. Defaults to 600s; the wait is
	// always bounded.
	MaxWait time.Duration

	// Backoff overrides the delay algorithm. If not set, exponential
	// backoff with jitter built from the delay fields is used.
	Backoff func() backoff.BackOff
}

// errStillExists marks a poll that found the resource present. It drives the
// retry loop and is replaced by a Timeout error when the budget runs out.
var errStillExists = errors.New("virtual service still exists")

// WaitUntilDeleted polls until describe reports the virtual service MISSING
// or DELETED.
//
// Each poll is one of:
//   - terminal success: not-found or a DELETED status
//   - retry: any other status, after a delay that starts at MinDelay and
//     grows with jitter up to MaxDelay
//   - fatal: any describe error other than not-found, surfaced immediately
//
// If MaxWait elapses without a terminal poll, a Timeout error is returned.
func (w *Waiter) WaitUntilDeleted(ctx context.Context, p Parameters) error {
	logger := w.logger().With(
		zap.String("mesh", p.MeshName),
		zap.String("virtualService", p.VirtualServiceName),
	)

	maxWait := w.MaxWait
	if maxWait == 0 {
		maxWait = DefaultMaxWait
	}

	op := func() error {
		out, err := w.API.DescribeVirtualService(ctx, p.DescribeInput())
		state, err := ClassifyDescribe(out, err)
		if err != nil {
			// Fatal: not retried, aborts the wait.
			return backoff.Permanent(err)
		}
		if state.Absent() {
			logger.Info("Virtual service deleted", zap.String("state", state.String()))
			return nil
		}
		return errors.Wrap(errStillExists, state.String())
	}

	notify := func(err error, delay time.Duration) {
		logger.Info("Waiting for deletion", zap.Error(err), zap.Duration("delay", delay))
	}

	err := backoff.RetryNotify(op, backoff.WithContext(w.algo(maxWait), ctx), notify)
	if err == nil {
		return nil
	}
	if cause := ctx.Err(); cause != nil {
		return errors.Wrap(cause, "wait for deletion")
	}
	if errors.Is(err, errStillExists) {
		return &Error{
			Kind: Timeout,
			Msg:  "virtual service was not deleted within " + maxWait.String(),
			Err:  err,
		}
	}
	return err
}

func (w *Waiter) algo(maxWait time.Duration) backoff.BackOff {
	if w.Backoff != nil {
		return w.Backoff()
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = w.MinDelay
	if b.InitialInterval == 0 {
		b.InitialInterval = DefaultMinDelay
	}
	b.MaxInterval = w.MaxDelay
	if b.MaxInterval == 0 {
		b.MaxInterval = DefaultMaxDelay
	}
	b.MaxElapsedTime = maxWait
	return b
}

func (w *Waiter) logger() *zap.Logger {
	if w.Logger == nil {
		return zap.NewNop()
	}
	return w.Logger
}
