package flight

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/projsim/internal/clock"
	"github.com/san-kum/projsim/internal/dynamo"
)

// Drive ticks s once per frame until the flight leaves the Flying state,
// for at most MaxFrames frames. Cancelling ctx resets the session, which
// drops any pending ticks, and returns ctx.Err().
func Drive(ctx context.Context, s *Session, frames <-chan time.Time) error {
	c := clock.New()
	for n := 0; ; n++ {
		if n == MaxFrames {
			return fmt.Errorf("%w: %d", ErrFrameLimit, MaxFrames)
		}
		select {
		case <-ctx.Done():
			s.Reset()
			return ctx.Err()
		case now, ok := <-frames:
			if !ok {
				// Frame sources close when ctx is done.
				if err := ctx.Err(); err != nil {
					s.Reset()
					return err
				}
				return ErrFramesClosed
			}
			if err := s.Tick(c.Sample(now)); err != nil {
				return err
			}
			if s.State() != dynamo.Flying {
				return nil
			}
		}
	}
}

// Ticker delivers wall-clock frames every interval until ctx is done.
func Ticker(ctx context.Context, interval time.Duration) <-chan time.Time {
	out := make(chan time.Time)
	go func() {
		defer close(out)
		t := time.NewTicker(interval)
		defer t.Stop()

		select {
		case out <- time.Now():
		case <-ctx.Done():
			return
		}
		for {
			select {
			case now := <-t.C:
				select {
				case out <- now:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Synthetic delivers frames spaced exactly interval apart starting at
// start, as fast as they are consumed. It is the headless frame source.
func Synthetic(ctx context.Context, start time.Time, interval time.Duration) <-chan time.Time {
	out := make(chan time.Time)
	go func() {
		defer close(out)
		for now := start; ; now = now.Add(interval) {
			select {
			case out <- now:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// MaxFrames bounds Drive and Fly. At 60 fps it is far longer than any flight the
// nominal parameter ranges allow.
const MaxFrames = 100000

// Fly ticks s with a fixed frame of the given seconds until it lands,
// without reference to the wall clock.
func Fly(ctx context.Context, s *Session, frame float64) (dynamo.FlightResult, error) {
	for i := 0; i < MaxFrames && s.State() == dynamo.Flying; i++ {
		if err := ctx.Err(); err != nil {
			s.Reset()
			return dynamo.FlightResult{}, err
		}
		if err := s.Tick(frame); err != nil {
			return dynamo.FlightResult{}, err
		}
	}
	r, ok := s.Result()
	if !ok {
		return r, fmt.Errorf("%w: %d", ErrFrameLimit, MaxFrames)
	}
	return r, nil
}
