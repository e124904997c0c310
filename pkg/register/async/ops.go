package async

import (
	"context"

	"github.com/devreg/devreg-go/pkg/register"
)

// Read reads a readable register with exactly one raw read.
func Read[R any, P register.ReadablePtr[R, A], A comparable](ctx context.Context, t Interface[A]) (R, error) {
	var reg R
	if err := t.ReadRegister(ctx, P(&reg)); err != nil {
		var zero R
		return zero, err
	}
	return reg, nil
}

// Write writes a writable register with exactly one raw write.
func Write[R any, P register.WritablePtr[R, A], A comparable](ctx context.Context, t Interface[A], reg R) error {
	return t.WriteRegister(ctx, P(&reg))
}

// Edit performs a read-modify-write of an editable register.
//
// The write starts only after the read has returned and f has run. If the
// read fails, f is not called and nothing is written. If ctx is done once f
// returns, the write is not issued and ctx.Err() is returned, leaving the
// device as it was read.
//
// When t implements Sequencer the sequence runs inside one Exclusive call.
func Edit[R any, P register.EditablePtr[R, A], A comparable](ctx context.Context, t Interface[A], f func(*R)) error {
	if seq, ok := t.(Sequencer[A]); ok {
		return seq.Exclusive(ctx, func(tx Interface[A]) error {
			return edit[R, P, A](ctx, tx, f)
		})
	}
	return edit[R, P, A](ctx, t, f)
}

func edit[R any, P register.EditablePtr[R, A], A comparable](ctx context.Context, t Interface[A], f func(*R)) error {
	var reg R
	if err := t.ReadRegister(ctx, P(&reg)); err != nil {
		return err
	}
	f(&reg)
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.WriteRegister(ctx, P(&reg))
}
