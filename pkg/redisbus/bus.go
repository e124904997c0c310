package redisbus

import (
	"context"
	"encoding"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/devreg/devreg-go/pkg/register"
	"github.com/devreg/devreg-go/pkg/register/async"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/semaphore"
)

// setExisting replaces a field only if it exists with the same length.
var setExisting = redis.NewScript(`
local old = redis.call('HGET', KEYS[1], ARGV[1])
if not old then
	return 'missing'
end
if string.len(old) ~= string.len(ARGV[2]) then
	return 'width:' .. string.len(old)
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
return 'ok'
`)

// Bus is a register transport backed by a Redis hash.
type Bus[A comparable] struct {
	client *redis.Client
	key    string

	// sem serializes Exclusive calls of this process; WATCH covers others.
	sem *semaphore.Weighted
}

// New creates a Bus. The client is not closed by the Bus.
func New[A comparable](client *redis.Client, cfg Config) (*Bus[A], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Bus[A]{
		client: client,
		key:    cfg.Key,
		sem:    semaphore.NewWeighted(1),
	}, nil
}

// Key returns the hash key.
func (b *Bus[A]) Key() string { return b.key }

func field[A comparable](addr A) string { return fmt.Sprint(addr) }

// Define creates or replaces the register at addr.
func (b *Bus[A]) Define(ctx context.Context, addr A, data []byte) error {
	return b.client.HSet(ctx, b.key, field(addr), data).Err()
}

// Get returns the stored bytes for addr.
func (b *Bus[A]) Get(ctx context.Context, addr A) ([]byte, error) {
	data, err := b.client.HGet(ctx, b.key, field(addr)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %v", ErrNoSuchAddress, addr)
	}
	return data, err
}

// Snapshot returns every stored register keyed by formatted address.
func (b *Bus[A]) Snapshot(ctx context.Context) (map[string][]byte, error) {
	fields, err := b.client.HGetAll(ctx, b.key).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(fields))
	for k, v := range fields {
		out[k] = []byte(v)
	}
	return out, nil
}

// ReadRegister decodes the hash field at the register's address into reg.
func (b *Bus[A]) ReadRegister(ctx context.Context, reg register.Register[A]) error {
	return readVia(ctx, b.client, b.key, reg)
}

// WriteRegister replaces an existing hash field with the encoding of reg.
func (b *Bus[A]) WriteRegister(ctx context.Context, reg register.Register[A]) error {
	addr := reg.RegisterAddress()
	data, err := encode(reg)
	if err != nil {
		return err
	}

	res, err := setExisting.Run(ctx, b.client, []string{b.key}, field(addr), data).Text()
	if err != nil {
		return err
	}
	switch {
	case res == "ok":
		return nil
	case res == "missing":
		return fmt.Errorf("%w: %v", ErrNoSuchAddress, addr)
	case strings.HasPrefix(res, "width:"):
		n, _ := strconv.Atoi(strings.TrimPrefix(res, "width:"))
		return fmt.Errorf("%w: %T at %v is %d bytes, register holds %d", ErrWidthMismatch, reg, addr, len(data), n)
	default:
		return fmt.Errorf("redisbus: unexpected script reply %q", res)
	}
}

// Exclusive runs fn with the hash under WATCH. Reads made by fn are served
// immediately; writes are queued and applied atomically when fn returns nil.
// If another client modified the hash in between, nothing is written and
// ErrConflict is returned.
func (b *Bus[A]) Exclusive(ctx context.Context, fn func(async.Interface[A]) error) error {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer b.sem.Release(1)

	err := b.client.Watch(ctx, func(tx *redis.Tx) error {
		t := &txBus[A]{tx: tx, key: b.key}
		if err := fn(t); err != nil {
			return err
		}
		if len(t.pending) == 0 {
			return nil
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, w := range t.pending {
				pipe.HSet(ctx, b.key, w.field, w.data)
			}
			return nil
		})
		return err
	}, b.key)

	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("%w: %s", ErrConflict, b.key)
	}
	return err
}

type pendingWrite struct {
	field string
	data  []byte
}

// txBus is the transport handed to Exclusive callbacks.
type txBus[A comparable] struct {
	tx      *redis.Tx
	key     string
	pending []pendingWrite
}

func (t *txBus[A]) ReadRegister(ctx context.Context, reg register.Register[A]) error {
	return readVia(ctx, t.tx, t.key, reg)
}

func (t *txBus[A]) WriteRegister(ctx context.Context, reg register.Register[A]) error {
	addr := reg.RegisterAddress()
	data, err := encode(reg)
	if err != nil {
		return err
	}

	old, err := t.tx.HGet(ctx, t.key, field(addr)).Bytes()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %v", ErrNoSuchAddress, addr)
	}
	if err != nil {
		return err
	}
	if len(old) != len(data) {
		return fmt.Errorf("%w: %T at %v is %d bytes, register holds %d", ErrWidthMismatch, reg, addr, len(data), len(old))
	}
	t.pending = append(t.pending, pendingWrite{field: field(addr), data: data})
	return nil
}

// hashGetter is implemented by both *redis.Client and *redis.Tx.
type hashGetter interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
}

func readVia[A comparable](ctx context.Context, c hashGetter, key string, reg register.Register[A]) error {
	u, ok := reg.(encoding.BinaryUnmarshaler)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedRegister, reg)
	}
	addr := reg.RegisterAddress()

	data, err := c.HGet(ctx, key, field(addr)).Bytes()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %v", ErrNoSuchAddress, addr)
	}
	if err != nil {
		return err
	}
	if err := u.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("decoding %T at %v: %w", reg, addr, err)
	}
	return nil
}

func encode(reg any) ([]byte, error) {
	m, ok := reg.(encoding.BinaryMarshaler)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedRegister, reg)
	}
	data, err := m.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encoding %T: %w", reg, err)
	}
	return data, nil
}

var (
	_ async.Interface[uint8] = (*Bus[uint8])(nil)
	_ async.Sequencer[uint8] = (*Bus[uint8])(nil)
)
