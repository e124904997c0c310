// Package async is the context-aware variant of package register.
//
// Operations are ordinary blocking calls that take a context.Context; run
// them in a goroutine of your own when you need concurrency. Nothing in this
// package starts goroutines, and suspension happens only inside transport
// calls.
//
//	cfg, err := async.Read[Config](ctx, dev)
//	err = async.Edit(ctx, dev, func(c *Config) { *c |= ConfigEnable })
//
// Register declarations are shared with package register; a register that is
// readable there is readable here.
package async
