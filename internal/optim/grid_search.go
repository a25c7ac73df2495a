// Package optim searches launch angles for the longest flight.
package optim

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/san-kum/projsim/internal/catalog"
	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/flight"
	"github.com/san-kum/projsim/internal/integrators"
)

// Candidate is one evaluated launch angle.
type Candidate struct {
	Angle  float64
	Result dynamo.FlightResult
}

// GridSearch flies every angle in Angles with otherwise fixed parameters.
// Each angle gets its own session and integrator, so angles run
// concurrently.
type GridSearch struct {
	Angles     []float64
	Frame      float64
	Integrator string
}

// NewAngleSearch covers [0, 90] degrees in steps of step degrees.
func NewAngleSearch(step float64) *GridSearch {
	if step <= 0 {
		step = 1
	}
	var angles []float64
	for a := dynamo.MinAngle; a <= dynamo.MaxAngle; a += step {
		angles = append(angles, a)
	}
	if last := angles[len(angles)-1]; last < dynamo.MaxAngle {
		angles = append(angles, dynamo.MaxAngle)
	}
	return &GridSearch{
		Angles:     angles,
		Frame:      1.0 / 60,
		Integrator: integrators.Default,
	}
}

// Search returns the angle with the longest range and every candidate in
// angle order. Ties go to the lower angle.
func (g *GridSearch) Search(ctx context.Context, spec catalog.Spec, base dynamo.LaunchParameters) (Candidate, []Candidate, error) {
	if len(g.Angles) == 0 {
		return Candidate{}, nil, fmt.Errorf("optim: no angles to search")
	}

	results := make([]Candidate, len(g.Angles))
	errs := make([]error, len(g.Angles))

	var wg sync.WaitGroup
	for i, angle := range g.Angles {
		wg.Add(1)
		go func(idx int, angle float64) {
			defer wg.Done()
			results[idx], errs[idx] = g.fly(ctx, spec, base, angle)
		}(i, angle)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return Candidate{}, nil, err
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Angle < results[j].Angle })
	best := results[0]
	for _, c := range results[1:] {
		if c.Result.Range > best.Result.Range {
			best = c
		}
	}
	return best, results, nil
}

func (g *GridSearch) fly(ctx context.Context, spec catalog.Spec, base dynamo.LaunchParameters, angle float64) (Candidate, error) {
	integ, err := integrators.ByName(g.Integrator)
	if err != nil {
		return Candidate{}, err
	}
	s, err := flight.NewSession(flight.WithIntegrator(integ), flight.WithLogger(zerolog.Nop()))
	if err != nil {
		return Candidate{}, err
	}

	p := base
	p.AngleDegrees = angle
	p.SlowMotion = false
	if err := s.Launch(spec, p); err != nil {
		return Candidate{}, err
	}
	r, err := flight.Fly(ctx, s, g.Frame)
	if err != nil {
		return Candidate{}, fmt.Errorf("angle %.1f: %w", angle, err)
	}
	return Candidate{Angle: angle, Result: r}, nil
}
