package capture

import (
	"context"

	"github.com/devreg/devreg-go/pkg/log"
	"github.com/devreg/devreg-go/pkg/register"
	"github.com/devreg/devreg-go/pkg/register/async"
)

// AsyncTransport is a capturing async.Interface.
type AsyncTransport[A comparable] struct {
	inner async.Interface[A]
	rec   recorder
}

// WrapAsync returns a transport that forwards to t and logs every raw access.
func WrapAsync[A comparable](t async.Interface[A], logger log.Logger, cfg Config) *AsyncTransport[A] {
	return &AsyncTransport[A]{inner: t, rec: newRecorder(logger, cfg)}
}

// SessionID returns the session ID stamped on this transport's events.
func (t *AsyncTransport[A]) SessionID() string { return t.rec.cfg.SessionID }

// ReadRegister forwards one raw read and records it.
func (t *AsyncTransport[A]) ReadRegister(ctx context.Context, reg register.Register[A]) error {
	start := t.rec.cfg.Clock()
	err := t.inner.ReadRegister(ctx, reg)
	t.rec.record(reg, reg.RegisterAddress(), log.DirectionIn, start, err)
	return err
}

// WriteRegister forwards one raw write and records it.
func (t *AsyncTransport[A]) WriteRegister(ctx context.Context, reg register.Register[A]) error {
	start := t.rec.cfg.Clock()
	err := t.inner.WriteRegister(ctx, reg)
	t.rec.record(reg, reg.RegisterAddress(), log.DirectionOut, start, err)
	return err
}

// Exclusive runs fn under the wrapped transport's Sequencer, if it has one.
func (t *AsyncTransport[A]) Exclusive(ctx context.Context, fn func(async.Interface[A]) error) error {
	seq, ok := t.inner.(async.Sequencer[A])
	if !ok {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(t)
	}
	return seq.Exclusive(ctx, func(tx async.Interface[A]) error {
		return fn(&AsyncTransport[A]{inner: tx, rec: t.rec})
	})
}

var (
	_ async.Interface[uint8] = (*AsyncTransport[uint8])(nil)
	_ async.Sequencer[uint8] = (*AsyncTransport[uint8])(nil)
)
