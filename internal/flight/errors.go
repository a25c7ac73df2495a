package flight

import (
	"errors"
	"fmt"

	"github.com/san-kum/projsim/internal/dynamo"
)

// ErrFramesClosed is returned by Drive when the frame source closes before
// the flight lands.
var ErrFramesClosed = errors.New("flight: frame source closed")

// ErrFrameLimit is returned when a flight is still airborne after
// MaxFrames frames.
var ErrFrameLimit = errors.New("flight: did not land within frame limit")

// StepError reports a sub-step that produced a non-finite state. The
// offending state is not applied.
type StepError struct {
	Step    int
	Elapsed float64
	State   dynamo.KinematicState
}

func (e *StepError) Error() string {
	return fmt.Sprintf("flight: step %d at t=%.3fs: pos=(%v, %v) vel=(%v, %v): %v",
		e.Step, e.Elapsed,
		e.State.Position.X, e.State.Position.Y,
		e.State.Velocity.X, e.State.Velocity.Y,
		dynamo.ErrNonFinite)
}

func (e *StepError) Unwrap() error {
	return dynamo.ErrNonFinite
}
