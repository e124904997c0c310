package capture

import (
	"encoding"
	"fmt"
	"time"

	"github.com/devreg/devreg-go/pkg/log"
	"github.com/devreg/devreg-go/pkg/register"
)

// Named is implemented by registers whose Go type does not identify them,
// such as registers loaded from a map at run time. The name replaces the
// type name in captured events.
type Named interface {
	RegisterName() string
}

func registerName(reg any) string {
	if n, ok := reg.(Named); ok {
		return n.RegisterName()
	}
	return fmt.Sprintf("%T", reg)
}

// recorder builds events for one transport handle.
type recorder struct {
	cfg    Config
	logger log.Logger
}

func newRecorder(logger log.Logger, cfg Config) recorder {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return recorder{cfg: cfg.withDefaults(), logger: logger}
}

func (r recorder) record(reg any, addr any, dir log.Direction, start time.Time, err error) {
	event := log.Event{
		Timestamp: start,
		SessionID: r.cfg.SessionID,
		Direction: dir,
		Device:    r.cfg.Device,
		Register:  registerName(reg),
		Address:   fmt.Sprint(addr),
		Access:    register.AccessOf(reg).String(),
		Duration:  r.cfg.Clock().Sub(start),
	}

	switch {
	case err != nil:
		event.Category = log.CategoryError
		event.Error = err.Error()
	case dir == log.DirectionIn:
		event.Category = log.CategoryRead
	default:
		event.Category = log.CategoryWrite
	}

	// After a failed read the register holds no device data.
	if !r.cfg.OmitData && (err == nil || dir == log.DirectionOut) {
		if m, ok := reg.(encoding.BinaryMarshaler); ok {
			if data, merr := m.MarshalBinary(); merr == nil {
				event.Data = data
			}
		}
	}

	r.logger.Log(event)
}

// Transport is a capturing register.Interface.
type Transport[A comparable] struct {
	inner register.Interface[A]
	rec   recorder
}

// Wrap returns a transport that forwards to t and logs every raw access.
func Wrap[A comparable](t register.Interface[A], logger log.Logger, cfg Config) *Transport[A] {
	return &Transport[A]{inner: t, rec: newRecorder(logger, cfg)}
}

// SessionID returns the session ID stamped on this transport's events.
func (t *Transport[A]) SessionID() string { return t.rec.cfg.SessionID }

// Unwrap returns the wrapped transport.
func (t *Transport[A]) Unwrap() register.Interface[A] { return t.inner }

// ReadRegister forwards one raw read and records it.
func (t *Transport[A]) ReadRegister(reg register.Register[A]) error {
	start := t.rec.cfg.Clock()
	err := t.inner.ReadRegister(reg)
	t.rec.record(reg, reg.RegisterAddress(), log.DirectionIn, start, err)
	return err
}

// WriteRegister forwards one raw write and records it.
func (t *Transport[A]) WriteRegister(reg register.Register[A]) error {
	start := t.rec.cfg.Clock()
	err := t.inner.WriteRegister(reg)
	t.rec.record(reg, reg.RegisterAddress(), log.DirectionOut, start, err)
	return err
}

// Exclusive runs fn under the wrapped transport's Sequencer, if it has one.
// Accesses made by fn are captured.
func (t *Transport[A]) Exclusive(fn func(register.Interface[A]) error) error {
	seq, ok := t.inner.(register.Sequencer[A])
	if !ok {
		return fn(t)
	}
	return seq.Exclusive(func(tx register.Interface[A]) error {
		return fn(&Transport[A]{inner: tx, rec: t.rec})
	})
}

var (
	_ register.Interface[uint8] = (*Transport[uint8])(nil)
	_ register.Sequencer[uint8] = (*Transport[uint8])(nil)
)
