package integrators

import (
	"math"

	"github.com/san-kum/projsim/internal/dynamo"
)

// Euler is the explicit scheme: position advances with the velocity from the
// start of the step. Kept for comparison runs only.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (Euler) Step(s dynamo.KinematicState, b dynamo.Body, p dynamo.LaunchParameters, dt float64) dynamo.KinematicState {
	acc := Acceleration(s.Velocity, b, p.AirResistance)

	next := s
	next.Position.X = s.Position.X + s.Velocity.X*dt
	next.Position.Y = s.Position.Y + s.Velocity.Y*dt
	next.Velocity.X = s.Velocity.X + acc.X*dt
	next.Velocity.Y = s.Velocity.Y + acc.Y*dt
	next.Elapsed = s.Elapsed + dt
	next.MaxHeight = math.Max(s.MaxHeight, next.Position.Y)
	return next
}
