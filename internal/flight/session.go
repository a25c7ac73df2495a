// Package flight runs a single launch from the platform to the ground.
//
// A Session is driven by one goroutine. It holds the live kinematic state,
// the sampled path, the predicted preview and the final result, and moves
// through Idle → Flying → Landed. Reset returns it to Idle from anywhere.
package flight

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/san-kum/projsim/internal/catalog"
	"github.com/san-kum/projsim/internal/clock"
	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/integrators"
	"github.com/san-kum/projsim/internal/metrics"
	"github.com/san-kum/projsim/internal/predict"
)

// Option configures a Session.
type Option func(*Session)

// WithIntegrator replaces the semi-implicit integrator.
func WithIntegrator(i dynamo.Integrator) Option {
	return func(s *Session) {
		s.integrator = i
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithMetrics replaces the default flight metrics.
func WithMetrics(ms ...dynamo.Metric) Option {
	return func(s *Session) {
		s.metrics = ms
	}
}

// WithObserver adds an observer notified after every accepted sub-step.
func WithObserver(o dynamo.Observer) Option {
	return func(s *Session) {
		s.observers = append(s.observers, o)
	}
}

// WithCatalog sets the catalog used by LaunchByID.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Session) {
		s.catalog = c
	}
}

// Session is one launch platform holding at most one flight at a time.
type Session struct {
	catalog    *catalog.Catalog
	integrator dynamo.Integrator
	log        zerolog.Logger
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
	inst       *instruments

	state      dynamo.FlightState
	projectile catalog.Spec
	params     dynamo.LaunchParameters
	kin        dynamo.KinematicState
	path       []dynamo.Vec2
	preview    []dynamo.Vec2
	result     *dynamo.FlightResult
	steps      int
}

// NewSession returns an Idle session with the semi-implicit integrator
// and the default catalog and metrics.
func NewSession(opts ...Option) (*Session, error) {
	inst, err := newInstruments()
	if err != nil {
		return nil, err
	}

	s := &Session{
		integrator: integrators.NewSemiImplicit(),
		log:        zerolog.Nop(),
		metrics:    metrics.Default(),
		inst:       inst,
		state:      dynamo.Idle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	return s, nil
}

func (s *Session) State() dynamo.FlightState { return s.state }

// Launch starts a flight of spec with params. Launching while a flight is
// in progress is ignored. Params are clamped into range; values that cannot
// be clamped are rejected and the session is left untouched.
func (s *Session) Launch(spec catalog.Spec, params dynamo.LaunchParameters) error {
	if s.state == dynamo.Flying {
		s.log.Debug().Str("projectile", s.projectile.ID).Msg("launch ignored, already flying")
		return nil
	}

	p, err := params.Normalize()
	if err != nil {
		s.log.Warn().Err(err).Msg("launch rejected")
		return fmt.Errorf("launch: %w", err)
	}
	if err := spec.Validate(); err != nil {
		s.log.Warn().Err(err).Str("projectile", spec.ID).Msg("launch rejected")
		return fmt.Errorf("launch %s: %w", spec.ID, err)
	}

	s.projectile = spec
	s.params = p
	s.kin = dynamo.InitialState(p)
	s.path = make([]dynamo.Vec2, 0, 256)
	s.preview = predict.Path(p)
	s.result = nil
	s.steps = 0
	for _, m := range s.metrics {
		m.Reset(s.kin)
	}
	s.state = dynamo.Flying

	s.inst.launches.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("projectile", spec.ID)))
	s.log.Debug().
		Str("projectile", spec.ID).
		Float64("angle", p.AngleDegrees).
		Float64("speed", p.Speed).
		Float64("height", p.PlatformHeight).
		Bool("air_resistance", p.AirResistance).
		Bool("slow_motion", p.SlowMotion).
		Msg("launch")
	return nil
}

// LaunchByID resolves id in the session catalog and launches it.
func (s *Session) LaunchByID(id string, params dynamo.LaunchParameters) error {
	spec, err := s.catalog.Lookup(id)
	if err != nil {
		return err
	}
	return s.Launch(spec, params)
}

// Tick advances the flight by realDelta seconds of wall-clock time. It is a
// no-op unless the session is Flying. The flight lands on the first sample
// at or below the ground; that sample is kept as is.
func (s *Session) Tick(realDelta float64) error {
	if s.state != dynamo.Flying {
		return nil
	}

	plan := clock.Advance(realDelta, clock.Dilation(s.params.SlowMotion))
	taken := 0
	defer func() {
		if taken > 0 {
			s.inst.substeps.Add(context.Background(), int64(taken))
		}
	}()

	for i := 0; i < plan.Count; i++ {
		next := s.integrator.Step(s.kin, s.projectile.Body, s.params, plan.Size)
		if !next.IsFinite() {
			err := &StepError{Step: s.steps, Elapsed: s.kin.Elapsed, State: next}
			s.log.Error().Err(err).Str("projectile", s.projectile.ID).Msg("integration diverged")
			return err
		}

		s.kin = next
		s.steps++
		taken++
		s.path = append(s.path, next.Position)
		for _, m := range s.metrics {
			m.OnStep(next)
		}
		for _, o := range s.observers {
			o.OnStep(next)
		}

		if next.Grounded() {
			s.land()
			break
		}
	}
	return nil
}

func (s *Session) land() {
	s.state = dynamo.Landed
	s.result = &dynamo.FlightResult{
		MaxHeight:    s.kin.MaxHeight,
		Range:        s.kin.Position.X,
		TimeOfFlight: s.kin.Elapsed,
	}

	attrs := metric.WithAttributes(attribute.String("projectile", s.projectile.ID))
	s.inst.landings.Add(context.Background(), 1, attrs)
	s.inst.timeOfFlight.Record(context.Background(), s.result.TimeOfFlight, attrs)
	s.log.Debug().
		Str("projectile", s.projectile.ID).
		Float64("range", s.result.Range).
		Float64("max_height", s.result.MaxHeight).
		Float64("time_of_flight", s.result.TimeOfFlight).
		Int("steps", s.steps).
		Msg("landed")
}

// Reset abandons any flight and returns to Idle. It is safe to call in any
// state, any number of times.
func (s *Session) Reset() {
	if s.state != dynamo.Idle {
		s.log.Debug().Str("from", s.state.String()).Msg("reset")
	}
	s.state = dynamo.Idle
	s.kin = dynamo.KinematicState{}
	s.path = nil
	s.preview = nil
	s.result = nil
	s.steps = 0
	for _, m := range s.metrics {
		m.Reset(dynamo.KinematicState{})
	}
}

// Preview returns the predicted path for params. While Flying the preview
// of the active flight is returned unchanged.
func (s *Session) Preview(params dynamo.LaunchParameters) []dynamo.Vec2 {
	if s.state != dynamo.Flying {
		s.preview = predict.Path(params)
	}
	return slices.Clone(s.preview)
}

// Result returns the landing summary once the flight has landed.
func (s *Session) Result() (dynamo.FlightResult, bool) {
	if s.result == nil {
		return dynamo.FlightResult{}, false
	}
	return *s.result, true
}

// Path returns a copy of the samples flown so far.
func (s *Session) Path() []dynamo.Vec2 {
	return slices.Clone(s.path)
}

func (s *Session) Kinematics() dynamo.KinematicState { return s.kin }

// Snapshot is a copy of everything a renderer needs. Nothing in it aliases
// session state.
type Snapshot struct {
	State      dynamo.FlightState      `json:"state"`
	Projectile catalog.Spec            `json:"projectile"`
	Params     dynamo.LaunchParameters `json:"params"`
	Kinematics dynamo.KinematicState   `json:"kinematics"`
	Path       []dynamo.Vec2           `json:"path"`
	Predicted  []dynamo.Vec2           `json:"predicted"`
	Result     *dynamo.FlightResult    `json:"result,omitempty"`
	Metrics    map[string]float64      `json:"metrics"`
	Steps      int                     `json:"steps"`
}

// LandingX returns where the flight touched down.
func (sn Snapshot) LandingX() (float64, bool) {
	if sn.Result == nil {
		return 0, false
	}
	return sn.Result.Range, true
}

// Snapshot captures the session as it is now.
func (s *Session) Snapshot() Snapshot {
	sn := Snapshot{
		State:      s.state,
		Projectile: s.projectile,
		Params:     s.params,
		Kinematics: s.kin,
		Path:       slices.Clone(s.path),
		Predicted:  slices.Clone(s.preview),
		Metrics:    make(map[string]float64, len(s.metrics)),
		Steps:      s.steps,
	}
	if s.result != nil {
		r := *s.result
		sn.Result = &r
	}
	for _, m := range s.metrics {
		sn.Metrics[m.Name()] = m.Value()
	}
	return sn
}
