// Package redisbus keeps a device's register file in a Redis hash.
//
// Each device is one hash; each register is one field named after its
// address and holding the register's binary encoding. Several processes can
// share a simulated device this way, for example a driver under test and a
// fixture that injects sensor readings.
//
// Bus implements async.Interface. Its Exclusive runs under WATCH, so an edit
// whose register was changed by another client between read and write fails
// with ErrConflict instead of overwriting that change.
package redisbus
