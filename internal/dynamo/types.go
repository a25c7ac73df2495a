package dynamo

import (
	"fmt"
	"math"
)

const (
	// Gravity is the gravitational acceleration in m/s².
	Gravity = 9.8
	// AirDensity is the fixed sea-level air density in kg/m³.
	AirDensity = 1.225

	MaxAngle = 90.0
	MinAngle = 0.0

	// Nominal slider ranges. The core clamps angle and height; speed limits
	// are advisory and enforced by callers.
	MinSpeed  = 1.0
	MaxSpeed  = 30.0
	MaxHeight = 30.0
)

type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Norm() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

type LaunchParameters struct {
	AngleDegrees   float64 `json:"angle" yaml:"angle"`
	Speed          float64 `json:"speed" yaml:"speed"`
	PlatformHeight float64 `json:"height" yaml:"height"`
	AirResistance  bool    `json:"air_resistance" yaml:"air_resistance"`
	SlowMotion     bool    `json:"slow_motion" yaml:"slow_motion"`
}

// Normalize clamps angle to [0, 90] and height to [0, ∞). Values that cannot
// be clamped into something meaningful (NaN, Inf, negative speed) are
// rejected with ErrInvalidParameter.
func (p LaunchParameters) Normalize() (LaunchParameters, error) {
	if !isFinite(p.AngleDegrees) {
		return p, fmt.Errorf("%w: angle %v", ErrInvalidParameter, p.AngleDegrees)
	}
	if !isFinite(p.Speed) || p.Speed < 0 {
		return p, fmt.Errorf("%w: speed %v", ErrInvalidParameter, p.Speed)
	}
	if !isFinite(p.PlatformHeight) {
		return p, fmt.Errorf("%w: platform height %v", ErrInvalidParameter, p.PlatformHeight)
	}
	return p.Clamped(), nil
}

// Clamped applies the last-resort clamping without validation. Non-finite
// values pass through unchanged.
func (p LaunchParameters) Clamped() LaunchParameters {
	p.AngleDegrees = math.Max(MinAngle, math.Min(MaxAngle, p.AngleDegrees))
	p.PlatformHeight = math.Max(0, p.PlatformHeight)
	p.Speed = math.Max(0, p.Speed)
	return p
}

// InitialVelocity returns (speed·cosθ, speed·sinθ). At exactly 90° the
// horizontal component is forced to zero so a vertical shot stays vertical.
func (p LaunchParameters) InitialVelocity() Vec2 {
	if p.AngleDegrees >= MaxAngle {
		return Vec2{0, p.Speed}
	}
	sin, cos := math.Sincos(p.AngleDegrees * math.Pi / 180)
	return Vec2{p.Speed * cos, p.Speed * sin}
}

// Body holds the physical properties the integrator needs.
type Body struct {
	Mass            float64 `yaml:"mass" json:"mass"`
	Diameter        float64 `yaml:"diameter" json:"diameter"`
	DragCoefficient float64 `yaml:"drag_coefficient" json:"drag_coefficient"`
}

// Area returns the cross-sectional area π(d/2)².
func (b Body) Area() float64 {
	r := b.Diameter / 2
	return math.Pi * r * r
}

func (b Body) Validate() error {
	switch {
	case !isFinite(b.Mass) || b.Mass <= 0:
		return fmt.Errorf("%w: mass %v", ErrInvalidParameter, b.Mass)
	case !isFinite(b.Diameter) || b.Diameter <= 0:
		return fmt.Errorf("%w: diameter %v", ErrInvalidParameter, b.Diameter)
	case !isFinite(b.DragCoefficient) || b.DragCoefficient < 0:
		return fmt.Errorf("%w: drag coefficient %v", ErrInvalidParameter, b.DragCoefficient)
	}
	return nil
}

// KinematicState is the authoritative state of a live flight.
type KinematicState struct {
	Position  Vec2    `json:"position"`
	Velocity  Vec2    `json:"velocity"`
	Elapsed   float64 `json:"elapsed"`
	MaxHeight float64 `json:"max_height"`
}

// InitialState places the body on the platform with the launch velocity.
func InitialState(p LaunchParameters) KinematicState {
	return KinematicState{
		Position:  Vec2{0, p.PlatformHeight},
		Velocity:  p.InitialVelocity(),
		MaxHeight: p.PlatformHeight,
	}
}

func (s KinematicState) IsFinite() bool {
	return s.Position.IsFinite() && s.Velocity.IsFinite() &&
		isFinite(s.Elapsed) && isFinite(s.MaxHeight)
}

// Grounded reports whether the body has reached or crossed the ground.
func (s KinematicState) Grounded() bool {
	return s.Position.Y < 0 || (s.Position.Y == 0 && s.Velocity.Y <= 0)
}

type FlightResult struct {
	MaxHeight    float64 `json:"max_height"`
	Range        float64 `json:"range"`
	TimeOfFlight float64 `json:"time_of_flight"`
}

func (r FlightResult) String() string {
	return fmt.Sprintf("height=%.2fm range=%.2fm time=%.2fs", r.MaxHeight, r.Range, r.TimeOfFlight)
}

type FlightState int

const (
	Idle FlightState = iota
	Flying
	Landed
)

func (s FlightState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Flying:
		return "flying"
	case Landed:
		return "landed"
	default:
		return fmt.Sprintf("FlightState(%d)", int(s))
	}
}

// Integrator advances a flight by one fixed step.
type Integrator interface {
	Step(s KinematicState, b Body, p LaunchParameters, dt float64) KinematicState
}

// Observer receives every accepted sub-step of a flight.
type Observer interface {
	OnStep(s KinematicState)
}

// Metric is an Observer that reduces a flight to a single number.
type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset(initial KinematicState)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
