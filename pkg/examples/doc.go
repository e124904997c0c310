// Package examples contains a driver for a small temperature sensor, written
// against the register packages.
//
// The sensor's registers are declared in registers.go with //register:
// directives; examples_register_gen.go is produced from them by regbind.
// Sensor talks to the device through any async.Interface[Address]: the
// I2C transport in this package, a redisbus.Bus or a regmap.Memory adapted
// with async.FromSync.
package examples

//go:generate go run github.com/devreg/devreg-go/cmd/regbind -dir .
