// Package clock converts real elapsed time into simulation time and splits
// it into fixed-size integration sub-steps.
package clock

import (
	"math"
	"time"
)

const (
	// FixedDt is the nominal integration step in simulation seconds.
	FixedDt = 0.016
	// MaxSubsteps bounds the work done for a single frame. A frame that
	// would need more is truncated and the simulation falls behind.
	MaxSubsteps = 250

	NormalDilation = 1.0
	SlowDilation   = 0.25
)

// Substeps is the plan for one frame: Count steps of Size seconds each.
type Substeps struct {
	Count int
	Size  float64
}

// Total returns the simulation time covered by the plan.
func (s Substeps) Total() float64 {
	return float64(s.Count) * s.Size
}

// Dilation maps the slow-motion flag to a time dilation factor.
func Dilation(slowMotion bool) float64 {
	if slowMotion {
		return SlowDilation
	}
	return NormalDilation
}

// Advance splits realDelta·dilation into equal sub-steps no larger than
// FixedDt. Non-positive or non-finite input yields an empty plan.
func Advance(realDelta, dilation float64) Substeps {
	if !finite(realDelta) || !finite(dilation) || realDelta <= 0 || dilation <= 0 {
		return Substeps{}
	}

	simDelta := realDelta * dilation
	n := math.Ceil(simDelta / FixedDt)
	if n > MaxSubsteps {
		return Substeps{Count: MaxSubsteps, Size: FixedDt}
	}

	count := int(n)
	if count < 1 {
		count = 1
	}
	return Substeps{Count: count, Size: simDelta / float64(count)}
}

// Clock measures real time between successive frames.
type Clock struct {
	last time.Time
}

func New() *Clock {
	return &Clock{}
}

// Sample returns the seconds elapsed since the previous sample. The first
// sample after New or Reset returns 0. A clock going backwards returns 0.
func (c *Clock) Sample(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	d := now.Sub(c.last)
	c.last = now
	if d <= 0 {
		return 0
	}
	return d.Seconds()
}

func (c *Clock) Reset() {
	c.last = time.Time{}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
