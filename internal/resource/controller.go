package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxUploads is the maximum number of concurrent artifact uploads.
	// If 0, defaults to 2.
	MaxUploads int64

	// IOLimitBytesPerSec is the maximum artifact write throughput.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller manages upload slots and IO throughput. A nil *Controller
// imposes no limits.
type Controller struct {
	cfg Config

	uploadSem *semaphore.Weighted

	ioLimiter *rate.Limiter
	ioBytes   atomic.Int64
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxUploads <= 0 {
		cfg.MaxUploads = 2
	}

	c := &Controller{
		cfg:       cfg,
		uploadSem: semaphore.NewWeighted(cfg.MaxUploads),
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
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

// MaxUploads returns the number of upload slots, or 0 for a nil controller.
func (c *Controller) MaxUploads() int {
	if c == nil {
		return 0
	}
	return int(c.cfg.MaxUploads)
}

// AcquireUpload reserves an upload slot, blocking while all slots are busy.
func (c *Controller) AcquireUpload(ctx context.Context) error {
	if c == nil {
		return ctx.Err()
	}
	return c.uploadSem.Acquire(ctx, 1)
}

// ReleaseUpload releases an upload slot.
func (c *Controller) ReleaseUpload() {
	if c == nil {
		return
	}
	c.uploadSem.Release(1)
}

// AcquireIO waits until the IO limit allows n bytes. Requests larger than the
// limiter burst are split.
func (c *Controller) AcquireIO(ctx context.Context, n int) error {
	if c == nil {
		return nil
	}
	c.ioBytes.Add(int64(n))
	if c.ioLimiter == nil {
		return nil
	}
	burst := c.ioLimiter.Burst()
	for n > 0 {
		chunk := min(n, burst)
		if err := c.ioLimiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// IOBytes returns the number of bytes passed through AcquireIO.
func (c *Controller) IOBytes() int64 {
	if c == nil {
		return 0
	}
	return c.ioBytes.Load()
}
