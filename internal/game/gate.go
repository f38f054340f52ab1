package game

import "time"

// FrameGate lets the world advance at most once per interval, no matter
// how often ebiten calls Update.
type FrameGate struct {
	interval time.Duration
	last     time.Time
}

func NewFrameGate(interval time.Duration) *FrameGate {
	return &FrameGate{interval: interval}
}

// Ready reports whether a tick is due at now and, if so, starts the next
// interval.
func (g *FrameGate) Ready(now time.Time) bool {
	if !g.last.IsZero() && now.Sub(g.last) < g.interval {
		return false
	}
	g.last = now
	return true
}
