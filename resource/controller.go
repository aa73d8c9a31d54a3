package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for arena chunks and cached blocks.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxConcurrentTransfers bounds the number of units saved or loaded at once.
	// If 0, defaults to 4.
	MaxConcurrentTransfers int64

	// IOLimitBytesPerSec is the maximum blob store throughput.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller bounds the memory, concurrent transfers and blob store bandwidth
// of one Store. A nil *Controller imposes no limits.
type Controller struct {
	cfg Config

	mem     *semaphore.Weighted // nil without a hard limit
	memUsed atomic.Int64

	transfers *semaphore.Weighted
	bandwidth *rate.Limiter // nil when unlimited
}

// NewController returns a Controller enforcing cfg.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentTransfers <= 0 {
		cfg.MaxConcurrentTransfers = 4
	}

	c := &Controller{cfg: cfg, transfers: semaphore.NewWeighted(cfg.MaxConcurrentTransfers)}
	if cfg.MemoryLimitBytes > 0 {
		c.mem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	if cfg.IOLimitBytesPerSec > 0 {
		c.bandwidth = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}
	return c
}

// Config returns the effective limits.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// AcquireMemory reserves n bytes, waiting for releases while the hard limit
// would be exceeded.
func (c *Controller) AcquireMemory(ctx context.Context, n int64) error {
	if c == nil || n <= 0 {
		return nil
	}
	if c.mem != nil {
		if err := c.mem.Acquire(ctx, n); err != nil {
			return err
		}
	}
	c.memUsed.Add(n)
	return nil
}

// TryAcquireMemory reserves n bytes if that fits under the hard limit.
func (c *Controller) TryAcquireMemory(n int64) bool {
	if c == nil || n <= 0 {
		return true
	}
	if c.mem != nil && !c.mem.TryAcquire(n) {
		return false
	}
	c.memUsed.Add(n)
	return true
}

// ReleaseMemory returns n previously reserved bytes.
func (c *Controller) ReleaseMemory(n int64) {
	if c == nil || n <= 0 {
		return
	}
	if c.mem != nil {
		c.mem.Release(n)
	}
	c.memUsed.Add(-n)
}

// MemoryUsage is the number of bytes currently reserved.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireTransfer takes one of the save/load slots, waiting while all are busy.
func (c *Controller) AcquireTransfer(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.transfers.Acquire(ctx, 1)
}

// TryAcquireTransfer takes a slot only if one is free.
func (c *Controller) TryAcquireTransfer() bool {
	return c == nil || c.transfers.TryAcquire(1)
}

// ReleaseTransfer returns a slot taken by AcquireTransfer or TryAcquireTransfer.
func (c *Controller) ReleaseTransfer() {
	if c != nil {
		c.transfers.Release(1)
	}
}

// AcquireIO blocks until n bytes of bandwidth are available. Requests above
// the one-second burst are paid for in burst-sized steps.
func (c *Controller) AcquireIO(ctx context.Context, n int) error {
	if c == nil || c.bandwidth == nil {
		return nil
	}
	for step := c.bandwidth.Burst(); n > 0; n -= step {
		if err := c.bandwidth.WaitN(ctx, min(n, step)); err != nil {
			return err
		}
	}
	return nil
}
