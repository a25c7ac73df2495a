// Package predict computes the drag-free closed-form trajectory preview.
//
// The preview is pure geometry: it is recomputed whenever the launch
// parameters change and is never advanced through time.
package predict

import (
	"math"

	"github.com/san-kum/projsim/internal/dynamo"
)

// SampleInterval is the time between preview samples in seconds.
const SampleInterval = 0.02

// Summary holds the analytic flight statistics.
type Summary struct {
	Range        float64 `json:"range"`
	TimeOfFlight float64 `json:"time_of_flight"`
	MaxHeight    float64 `json:"max_height"`
}

// FlightTime returns T = (v0y + sqrt(v0y² + 2gh)) / g.
func FlightTime(p dynamo.LaunchParameters) float64 {
	v0 := p.InitialVelocity()
	h := p.PlatformHeight
	return (v0.Y + math.Sqrt(v0.Y*v0.Y+2*dynamo.Gravity*h)) / dynamo.Gravity
}

// Analytic returns range, time of flight and apex height ignoring drag.
// Invalid parameters yield a zero Summary.
func Analytic(params dynamo.LaunchParameters) Summary {
	p, err := params.Normalize()
	if err != nil {
		return Summary{}
	}
	v0 := p.InitialVelocity()
	T := FlightTime(p)
	apex := p.PlatformHeight
	if v0.Y > 0 {
		apex += v0.Y * v0.Y / (2 * dynamo.Gravity)
	}
	return Summary{
		Range:        v0.X * T,
		TimeOfFlight: T,
		MaxHeight:    apex,
	}
}

// Path samples x(t) = v0x·t, y(t) = h + v0y·t − ½gt² every SampleInterval
// for t in [0, T]. Every returned point has y ≥ 0. A zero launch speed
// yields the launch point alone; invalid parameters yield nil.
func Path(params dynamo.LaunchParameters) []dynamo.Vec2 {
	p, err := params.Normalize()
	if err != nil {
		return nil
	}
	h := p.PlatformHeight
	if p.Speed == 0 {
		return []dynamo.Vec2{{X: 0, Y: h}}
	}

	v0 := p.InitialVelocity()
	T := FlightTime(p)
	n := int(math.Floor(T/SampleInterval)) + 1
	points := make([]dynamo.Vec2, 0, n)

	for i := 0; ; i++ {
		t := float64(i) * SampleInterval
		if t > T {
			break
		}
		y := h + v0.Y*t - 0.5*dynamo.Gravity*t*t
		if y < 0 {
			break
		}
		points = append(points, dynamo.Vec2{X: v0.X * t, Y: y})
	}
	return points
}
