package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/devreg/devreg-go/pkg/persistence"
	"github.com/devreg/devreg-go/pkg/regmap"
	"github.com/devreg/devreg-go/pkg/regspec"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	ctx := context.Background()
	assert.True(t, newLogger("debug").Enabled(ctx, slog.LevelDebug))
	assert.False(t, newLogger("warn").Enabled(ctx, slog.LevelInfo))
	assert.True(t, newLogger("bogus").Enabled(ctx, slog.LevelInfo))
}

func TestOpenRedisSeeds(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	m := &regspec.Map{
		Device: "pump",
		Registers: []regspec.Register{
			{Name: "Speed", Addr: 0x01, Kind: "rw", Width: 16, Reset: 0x0102},
			{Name: "Fault", Addr: 0x02, Kind: "ro", Width: 8, Reset: 0x00},
		},
	}

	old := config
	defer func() { config = old }()
	config.Seed = true
	config.RedisKey = ""

	bus, err := openRedis(context.Background(), client, m)
	require.NoError(t, err)
	assert.Equal(t, "devreg:pump", bus.Key())
	assert.Equal(t, "\x01\x02", mr.HGet("devreg:pump", "1"))
	assert.Equal(t, "\x00", mr.HGet("devreg:pump", "2"))
}

func TestOpenRedisUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	client := redis.NewClient(&redis.Options{Addr: addr, MaxRetries: -1})
	defer client.Close()

	_, err = openRedis(context.Background(), client, &regspec.Map{Device: "pump"})
	assert.ErrorContains(t, err, "connecting to redis")
}

func TestLoadState(t *testing.T) {
	m := &regspec.Map{
		Device: "pump",
		Registers: []regspec.Register{
			{Name: "Speed", Addr: 0x01, Kind: "rw", Width: 16, Reset: 0x0102},
		},
	}
	mem, err := regmap.FromSpec(m)
	require.NoError(t, err)

	store := persistence.NewStateStore(filepath.Join(t.TempDir(), "pump.json"))
	require.NoError(t, loadState(store, m, mem), "missing state file is not an error")

	mem.Define(0x01, []byte{0xBE, 0xEF})
	require.NoError(t, store.Save(persistence.FromMemory(m, mem)))

	fresh, err := regmap.FromSpec(m)
	require.NoError(t, err)
	require.NoError(t, loadState(store, m, fresh))
	data, _ := fresh.Get(0x01)
	assert.Equal(t, []byte{0xBE, 0xEF}, data)
}
