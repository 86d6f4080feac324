package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Counters is a RenderHooks and CacheHooks implementation that tallies
// events. The CLI installs it to print a run summary; tests use it to
// assert on emitted events.
type Counters struct {
	Started   atomic.Int64
	Rendered  atomic.Int64
	Restored  atomic.Int64
	Failed    atomic.Int64
	Hits      atomic.Int64
	Misses    atomic.Int64
	Sets      atomic.Int64
	BytesSet  atomic.Int64
	drawNanos atomic.Int64
}

// DrawTime is the summed duration of figures that were drawn.
func (c *Counters) DrawTime() time.Duration { return time.Duration(c.drawNanos.Load()) }

func (c *Counters) OnRunStart(context.Context, int)                               {}
func (c *Counters) OnRunComplete(context.Context, int, int, time.Duration, error) {}

func (c *Counters) OnFigureStart(context.Context, string) { c.Started.Add(1) }

func (c *Counters) OnFigureComplete(_ context.Context, _ string, cached bool, d time.Duration, err error) {
	switch {
	case err != nil:
		c.Failed.Add(1)
	case cached:
		c.Restored.Add(1)
	default:
		c.Rendered.Add(1)
		c.drawNanos.Add(int64(d))
	}
}

func (c *Counters) OnCacheHit(context.Context, string)  { c.Hits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string) { c.Misses.Add(1) }

func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.Sets.Add(1)
	c.BytesSet.Add(int64(size))
}

var (
	_ RenderHooks = (*Counters)(nil)
	_ CacheHooks  = (*Counters)(nil)
)
