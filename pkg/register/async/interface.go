package async

import (
	"context"

	"github.com/devreg/devreg-go/pkg/register"
)

// Interface is implemented by a context-aware transport serving the address
// space A. The contract is that of register.Interface; additionally a
// transport should give up and return ctx.Err() when ctx is done.
type Interface[A comparable] interface {
	ReadRegister(ctx context.Context, reg register.Register[A]) error
	WriteRegister(ctx context.Context, reg register.Register[A]) error
}

// Sequencer is implemented by transports that can hold exclusive access
// across several raw operations.
type Sequencer[A comparable] interface {
	// Exclusive waits for exclusive access, calls fn and returns its error.
	// If ctx is done before access is granted, fn is not called.
	Exclusive(ctx context.Context, fn func(Interface[A]) error) error
}
