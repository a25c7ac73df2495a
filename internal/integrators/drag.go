package integrators

import "github.com/san-kum/projsim/internal/dynamo"

// Acceleration returns gravity plus, when airResistance is set, quadratic
// drag Fd = ½·ρ·v²·Cd·A opposing the velocity. At zero speed the drag
// direction is undefined and the drag term is dropped.
func Acceleration(vel dynamo.Vec2, b dynamo.Body, airResistance bool) dynamo.Vec2 {
	acc := dynamo.Vec2{X: 0, Y: -dynamo.Gravity}
	if !airResistance {
		return acc
	}

	v := vel.Norm()
	if v == 0 {
		return acc
	}

	fd := 0.5 * dynamo.AirDensity * v * v * b.DragCoefficient * b.Area()
	acc.X -= (fd * vel.X / v) / b.Mass
	acc.Y -= (fd * vel.Y / v) / b.Mass
	return acc
}
