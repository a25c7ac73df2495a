package integrators

import (
	"math"

	"github.com/san-kum/projsim/internal/dynamo"
)

// SemiImplicit is the symplectic Euler scheme: velocity is updated first and
// the new velocity moves the position within the same step.
type SemiImplicit struct{}

func NewSemiImplicit() *SemiImplicit {
	return &SemiImplicit{}
}

func (SemiImplicit) Step(s dynamo.KinematicState, b dynamo.Body, p dynamo.LaunchParameters, dt float64) dynamo.KinematicState {
	acc := Acceleration(s.Velocity, b, p.AirResistance)

	next := s
	next.Velocity.X = s.Velocity.X + acc.X*dt
	next.Velocity.Y = s.Velocity.Y + acc.Y*dt
	next.Position.X = s.Position.X + next.Velocity.X*dt
	next.Position.Y = s.Position.Y + next.Velocity.Y*dt
	next.Elapsed = s.Elapsed + dt
	next.MaxHeight = math.Max(s.MaxHeight, next.Position.Y)
	return next
}
