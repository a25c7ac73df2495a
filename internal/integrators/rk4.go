package integrators

import (
	"math"

	"github.com/san-kum/projsim/internal/dynamo"
)

// phase is (x, y, vx, vy).
type phase [4]float64

type RK4 struct {
	k1, k2, k3, k4 phase
}

func NewRK4() *RK4 {
	return &RK4{}
}

func derive(x phase, b dynamo.Body, air bool) phase {
	acc := Acceleration(dynamo.Vec2{X: x[2], Y: x[3]}, b, air)
	return phase{x[2], x[3], acc.X, acc.Y}
}

func (r *RK4) Step(s dynamo.KinematicState, b dynamo.Body, p dynamo.LaunchParameters, dt float64) dynamo.KinematicState {
	x := phase{s.Position.X, s.Position.Y, s.Velocity.X, s.Velocity.Y}
	air := p.AirResistance

	var scratch phase
	r.k1 = derive(x, b, air)

	for i := range x {
		scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	r.k2 = derive(scratch, b, air)

	for i := range x {
		scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	r.k3 = derive(scratch, b, air)

	for i := range x {
		scratch[i] = x[i] + dt*r.k3[i]
	}
	r.k4 = derive(scratch, b, air)

	dt6 := dt / 6.0
	for i := range x {
		x[i] += dt6 * (r.k1[i] + 2*r.k2[i] + 2*r.k3[i] + r.k4[i])
	}

	return dynamo.KinematicState{
		Position:  dynamo.Vec2{X: x[0], Y: x[1]},
		Velocity:  dynamo.Vec2{X: x[2], Y: x[3]},
		Elapsed:   s.Elapsed + dt,
		MaxHeight: math.Max(s.MaxHeight, x[1]),
	}
}
