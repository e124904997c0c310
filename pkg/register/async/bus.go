package async

import (
	"context"

	"github.com/devreg/devreg-go/pkg/register"
	"golang.org/x/sync/semaphore"
)

// Bus gives callers exclusive use of a transport. Waiting for the bus honours
// the caller's context.
type Bus[A comparable] struct {
	sem   *semaphore.Weighted
	inner Interface[A]
}

// NewBus wraps a transport.
func NewBus[A comparable](t Interface[A]) *Bus[A] {
	return &Bus[A]{
		sem:   semaphore.NewWeighted(1),
		inner: t,
	}
}

// ReadRegister performs one raw read while holding the bus.
func (b *Bus[A]) ReadRegister(ctx context.Context, reg register.Register[A]) error {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer b.sem.Release(1)
	return b.inner.ReadRegister(ctx, reg)
}

// WriteRegister performs one raw write while holding the bus.
func (b *Bus[A]) WriteRegister(ctx context.Context, reg register.Register[A]) error {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer b.sem.Release(1)
	return b.inner.WriteRegister(ctx, reg)
}

// Exclusive holds the bus while fn runs. fn must use the transport it is
// given, not the Bus.
func (b *Bus[A]) Exclusive(ctx context.Context, fn func(Interface[A]) error) error {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer b.sem.Release(1)
	return fn(b.inner)
}

// Free waits for the bus and returns the wrapped transport. The Bus must not
// be used afterwards.
func (b *Bus[A]) Free(ctx context.Context) (Interface[A], error) {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer b.sem.Release(1)
	t := b.inner
	b.inner = nil
	return t, nil
}

var (
	_ Interface[uint8] = (*Bus[uint8])(nil)
	_ Sequencer[uint8] = (*Bus[uint8])(nil)
)
