package redisbus

import (
	"errors"
	"strings"
)

// DefaultKeyPrefix prefixes the hash key of every device.
const DefaultKeyPrefix = "devreg"

// Config configures a Bus.
type Config struct {
	// Key is the Redis hash holding the register file.
	Key string
}

// DefaultConfig returns the configuration for the named device.
func DefaultConfig(device string) Config {
	return Config{Key: DefaultKeyPrefix + ":" + device}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Key) == "" {
		return errors.New("redisbus: key is required")
	}
	return nil
}
