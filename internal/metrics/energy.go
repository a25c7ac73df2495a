package metrics

import (
	"github.com/san-kum/projsim/internal/dynamo"
)

// EnergyLoss tracks the fraction of specific mechanical energy
// (½v² + g·y, per unit mass) lost since launch. Without drag it stays near
// zero and any residue is integration error.
type EnergyLoss struct {
	name    string
	initial float64
	current float64
}

func NewEnergyLoss() *EnergyLoss {
	return &EnergyLoss{name: "energy_loss"}
}

func SpecificEnergy(s dynamo.KinematicState) float64 {
	v := s.Velocity.Norm()
	return 0.5*v*v + dynamo.Gravity*s.Position.Y
}

func (e *EnergyLoss) Name() string { return e.name }

func (e *EnergyLoss) Reset(initial dynamo.KinematicState) {
	e.initial = SpecificEnergy(initial)
	e.current = e.initial
}

func (e *EnergyLoss) OnStep(s dynamo.KinematicState) {
	e.current = SpecificEnergy(s)
}

func (e *EnergyLoss) Value() float64 {
	if e.initial == 0 {
		return 0
	}
	return (e.initial - e.current) / e.initial
}
