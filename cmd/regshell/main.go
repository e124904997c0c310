// Command regshell is an interactive console for a device described by a
// register map.
//
// The device is simulated in memory from the map's reset values, or shared
// through a Redis hash so that other processes see the same registers.
// Access kinds from the map are enforced: a read-only register cannot be
// written from the shell, an edit-only register can only be edited.
//
// Usage:
//
//	regshell -map <registers.yaml> [flags]
//
// Flags:
//
//	-map string        Register map YAML (required)
//	-redis string      Redis address; simulate in memory when empty
//	-key string        Redis hash key (default "devreg:<device>")
//	-seed              Load reset values into the Redis hash first
//	-state string      Keep simulated register values in a JSON file
//	-capture string    Record every register access to a .rlog file
//	-trace             Log every register access at debug level
//	-log-level string  Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Simulate a sensor in memory
//	regshell -map sensor.yaml
//
//	# Share a device through Redis and record a capture
//	regshell -map sensor.yaml -redis localhost:6379 -seed -capture session.rlog
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/devreg/devreg-go/cmd/regshell/shell"
	"github.com/devreg/devreg-go/pkg/capture"
	"github.com/devreg/devreg-go/pkg/log"
	"github.com/devreg/devreg-go/pkg/persistence"
	"github.com/devreg/devreg-go/pkg/redisbus"
	"github.com/devreg/devreg-go/pkg/register"
	"github.com/devreg/devreg-go/pkg/register/async"
	"github.com/devreg/devreg-go/pkg/regmap"
	"github.com/devreg/devreg-go/pkg/regspec"
	"github.com/redis/go-redis/v9"
)

// Config holds the command line settings.
type Config struct {
	MapFile     string
	RedisAddr   string
	RedisKey    string
	Seed        bool
	StateFile   string
	CaptureFile string
	Trace       bool
	LogLevel    string
}

var config Config

func init() {
	flag.StringVar(&config.MapFile, "map", "", "Register map YAML (required)")
	flag.StringVar(&config.RedisAddr, "redis", "", "Redis address; simulate in memory when empty")
	flag.StringVar(&config.RedisKey, "key", "", "Redis hash key (default \"devreg:<device>\")")
	flag.BoolVar(&config.Seed, "seed", false, "Load reset values into the Redis hash first")
	flag.StringVar(&config.StateFile, "state", "", "Keep simulated register values in a JSON file")
	flag.StringVar(&config.CaptureFile, "capture", "", "Record every register access to a .rlog file")
	flag.BoolVar(&config.Trace, "trace", false, "Log every register access at debug level")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	logger := newLogger(config.LogLevel)
	if err := run(logger); err != nil {
		logger.Error("regshell failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	if config.MapFile == "" {
		flag.Usage()
		return errors.New("-map is required")
	}
	m, err := regspec.LoadMap(config.MapFile)
	if err != nil {
		return err
	}
	logger.Info("register map loaded", "device", m.Device, "registers", len(m.Registers))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var loggers []log.Logger
	if config.CaptureFile != "" {
		fl, err := log.NewFileLogger(config.CaptureFile)
		if err != nil {
			return err
		}
		defer func() {
			written, dropped := fl.Counts()
			logger.Info("capture closed", "file", fl.Path(), "events", written, "dropped", dropped)
			fl.Close()
		}()
		loggers = append(loggers, fl)
	}
	if config.Trace {
		loggers = append(loggers, log.NewSlogAdapter(logger))
	}
	capCfg := capture.DefaultConfig()
	capCfg.Device = m.Device
	capLogger := log.NewMultiLogger(loggers...)

	cfg := shell.Config{Map: m}
	if config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		defer client.Close()

		bus, err := openRedis(ctx, client, m)
		if err != nil {
			return err
		}
		logger.Info("using redis", "addr", config.RedisAddr, "key", bus.Key())
		cfg.Transport = capture.WrapAsync[uint64](bus, capLogger, capCfg)
	} else {
		mem, err := regmap.FromSpec(m)
		if err != nil {
			return err
		}
		if config.StateFile != "" {
			store := persistence.NewStateStore(config.StateFile)
			if err := loadState(store, m, mem); err != nil {
				return err
			}
			defer func() {
				if err := store.Save(persistence.FromMemory(m, mem)); err != nil {
					logger.Error("saving register state", "file", store.Path(), "error", err)
				}
			}()
		}
		dev := register.NewBus[uint64](capture.Wrap[uint64](mem, capLogger, capCfg))
		cfg.Transport = async.FromSync[uint64](dev)
		cfg.Stats = mem.Stats
	}
	logger.Debug("capture session", "id", capCfg.SessionID)

	sh, err := shell.New(cfg)
	if err != nil {
		return err
	}
	return sh.Run(ctx)
}

func openRedis(ctx context.Context, client *redis.Client, m *regspec.Map) (*redisbus.Bus[uint64], error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	rcfg := redisbus.DefaultConfig(m.Device)
	if config.RedisKey != "" {
		rcfg.Key = config.RedisKey
	}
	bus, err := redisbus.New[uint64](client, rcfg)
	if err != nil {
		return nil, err
	}

	if config.Seed {
		for i := range m.Registers {
			r := &m.Registers[i]
			if err := bus.Define(ctx, r.Addr, regmap.EncodeUint(r.Reset, r.Bytes())); err != nil {
				return nil, fmt.Errorf("seeding %s: %w", r.Name, err)
			}
		}
	}
	return bus, nil
}

// loadState restores saved register values, if there are any.
func loadState(store *persistence.StateStore, m *regspec.Map, mem *regmap.Memory[uint64]) error {
	state, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading register state: %w", err)
	}
	if state == nil {
		return nil
	}
	if err := state.Restore(m, mem); err != nil {
		return fmt.Errorf("%s: %w", store.Path(), err)
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
