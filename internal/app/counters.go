package app

import "sync/atomic"

// Counters track timer ticks and rendered frames for pacing diagnostics.
type Counters struct {
	frame         atomic.Uint64
	previousFrame atomic.Uint64
	frameDrawn    atomic.Uint64
}

func (c *Counters) Tick()  { c.frame.Add(1) }
func (c *Counters) Drawn() { c.frameDrawn.Add(1) }

func (c *Counters) Frame() uint64 { return c.frame.Load() }

// Pace returns the ticks and frames since the previous call.
func (c *Counters) Pace() (ticks, drawn uint64) {
	f := c.frame.Load()
	return f - c.previousFrame.Swap(f), c.frameDrawn.Swap(0)
}
