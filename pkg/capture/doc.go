// Package capture records raw register accesses.
//
// Wrap and WrapAsync decorate a transport so that each raw read or write it
// performs is reported to a log.Logger after it completes:
//
//	logger, _ := log.NewFileLogger("bench.rlog")
//	dev := capture.Wrap[uint8](i2cDev, logger, capture.Config{Device: "bme280"})
//	cfg, err := register.Read[Config](dev)
//
// The transport's result is returned unchanged, and Exclusive is passed
// through so that edits keep their exclusive access.
package capture
