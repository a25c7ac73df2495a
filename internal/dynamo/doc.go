// Package dynamo provides the shared primitives of the trajectory engine.
//
// The package defines the value types passed between the engine components
// and the error taxonomy they report:
//
//   - [Vec2]: a point or vector in simulation space (metres, y up from ground)
//   - [LaunchParameters]: a caller-owned snapshot of the launch controls
//   - [KinematicState]: position, velocity and bookkeeping of a live flight
//   - [FlightResult]: summary statistics computed at landing
//   - [FlightState]: the Idle → Flying → Landed state machine
//
// # Example
//
//	params := dynamo.LaunchParameters{AngleDegrees: 45, Speed: 20}
//	params, err := params.Normalize()
//	if err != nil {
//	    return err
//	}
//	v0 := params.InitialVelocity()
//
// # Thread Safety
//
// All types are plain values. Copy them freely; nothing here holds shared
// mutable state.
package dynamo
