package examples

import (
	"context"

	"github.com/devreg/devreg-go/pkg/register/async"
)

// Sensor drives the temperature sensor through its registers.
type Sensor struct {
	t async.Interface[Address]
}

// NewSensor returns a driver using t.
func NewSensor(t async.Interface[Address]) *Sensor {
	return &Sensor{t: t}
}

// Configure sets rate and gain and starts conversions. Reserved bits of
// Config are kept.
func (s *Sensor) Configure(ctx context.Context, rate Rate, gain uint8) error {
	return async.Edit(ctx, s.t, func(c *Config) {
		*c = c.WithRate(rate).WithGain(gain).WithEnabled(true)
	})
}

// Stop halts conversions.
func (s *Sensor) Stop(ctx context.Context) error {
	return async.Edit(ctx, s.t, func(c *Config) {
		*c = c.WithEnabled(false)
	})
}

// Config returns the current settings.
func (s *Sensor) Config(ctx context.Context) (Config, error) {
	return async.Read[Config](ctx, s.t)
}

// Ready reports whether a fresh conversion is available.
func (s *Sensor) Ready(ctx context.Context) (bool, error) {
	st, err := async.Read[Status](ctx, s.t)
	if err != nil {
		return false, err
	}
	return st.Ready(), nil
}

// Temperature returns the last conversion in degrees Celsius.
func (s *Sensor) Temperature(ctx context.Context) (float64, error) {
	d, err := async.Read[Data](ctx, s.t)
	if err != nil {
		return 0, err
	}
	return d.Celsius(), nil
}

// Calibrate sets the user offset, keeping the factory trim.
func (s *Sensor) Calibrate(ctx context.Context, offset int8) error {
	return async.Edit(ctx, s.t, func(c *Calibration) {
		*c = c.WithOffset(offset)
	})
}

// Reset restarts the sensor.
func (s *Sensor) Reset(ctx context.Context) error {
	return async.Write(ctx, s.t, ResetMagic)
}
