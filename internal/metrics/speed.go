package metrics

import (
	"math"

	"github.com/san-kum/projsim/internal/dynamo"
)

type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Reset(initial dynamo.KinematicState) {
	p.peak = initial.Velocity.Norm()
}

func (p *PeakSpeed) OnStep(s dynamo.KinematicState) {
	p.peak = math.Max(p.peak, s.Velocity.Norm())
}

func (p *PeakSpeed) Value() float64 { return p.peak }

// Default returns a fresh set of the metrics attached to every flight.
func Default() []dynamo.Metric {
	return []dynamo.Metric{NewEnergyLoss(), NewPeakSpeed()}
}
