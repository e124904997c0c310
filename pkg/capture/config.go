package capture

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Config configures a capturing transport.
type Config struct {
	// Device names the device in every event.
	Device string

	// SessionID identifies this transport handle. A random UUID is used
	// when empty.
	SessionID string

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time

	// OmitData leaves register bytes out of events.
	OmitData bool
}

// DefaultConfig returns a configuration with a fresh session ID.
func DefaultConfig() Config {
	return Config{
		SessionID: uuid.NewString(),
		Clock:     time.Now,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.SessionID != "" {
		if _, err := uuid.Parse(c.SessionID); err != nil {
			return errors.New("capture: session ID must be a UUID")
		}
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.SessionID == "" {
		c.SessionID = uuid.NewString()
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
	return c
}
