package async

import (
	"context"

	"github.com/devreg/devreg-go/pkg/register"
)

// SyncAdapter serves async callers from a blocking transport.
type SyncAdapter[A comparable] struct {
	t register.Interface[A]
}

// FromSync adapts a register.Interface. The context is checked before each
// raw call; a call that has started runs to completion.
//
// If t implements register.Sequencer, the adapter implements Sequencer by
// delegating to it.
func FromSync[A comparable](t register.Interface[A]) *SyncAdapter[A] {
	return &SyncAdapter[A]{t: t}
}

// Sync returns the adapted transport.
func (s *SyncAdapter[A]) Sync() register.Interface[A] {
	return s.t
}

// ReadRegister performs one blocking raw read unless ctx is already done.
func (s *SyncAdapter[A]) ReadRegister(ctx context.Context, reg register.Register[A]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.t.ReadRegister(reg)
}

// WriteRegister performs one blocking raw write unless ctx is already done.
func (s *SyncAdapter[A]) WriteRegister(ctx context.Context, reg register.Register[A]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.t.WriteRegister(reg)
}

// Exclusive runs fn under the wrapped transport's Sequencer, or directly when
// it has none.
func (s *SyncAdapter[A]) Exclusive(ctx context.Context, fn func(Interface[A]) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	seq, ok := s.t.(register.Sequencer[A])
	if !ok {
		return fn(s)
	}
	return seq.Exclusive(func(tx register.Interface[A]) error {
		return fn(&SyncAdapter[A]{t: tx})
	})
}

var (
	_ Interface[uint8] = (*SyncAdapter[uint8])(nil)
	_ Sequencer[uint8] = (*SyncAdapter[uint8])(nil)
)
