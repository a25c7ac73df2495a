package flight_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/projsim/internal/catalog"
	"github.com/san-kum/projsim/internal/clock"
	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/flight"
	"github.com/san-kum/projsim/internal/predict"
)

const frame = 1.0 / 60

// fly ticks s at 60 Hz until it leaves the Flying state.
func fly(s *flight.Session) dynamo.FlightResult {
	for i := 0; i < 100000 && s.State() == dynamo.Flying; i++ {
		Expect(s.Tick(frame)).To(Succeed())
	}
	Expect(s.State()).To(Equal(dynamo.Landed))
	r, ok := s.Result()
	Expect(ok).To(BeTrue())
	return r
}

type nanIntegrator struct{}

func (nanIntegrator) Step(s dynamo.KinematicState, _ dynamo.Body, _ dynamo.LaunchParameters, _ float64) dynamo.KinematicState {
	s.Position.X = math.NaN()
	return s
}

type countingObserver struct{ n int }

func (c *countingObserver) OnStep(dynamo.KinematicState) { c.n++ }

var _ = Describe("Session", func() {
	var (
		s          *flight.Session
		cannonball catalog.Spec
	)

	BeforeEach(func() {
		var err error
		s, err = flight.NewSession()
		Expect(err).NotTo(HaveOccurred())
		cannonball, err = catalog.Lookup("cannonball")
		Expect(err).NotTo(HaveOccurred())
	})

	Context("when idle", func() {
		It("ignores ticks", func() {
			Expect(s.State()).To(Equal(dynamo.Idle))
			Expect(s.Tick(frame)).To(Succeed())
			Expect(s.State()).To(Equal(dynamo.Idle))
			Expect(s.Path()).To(BeEmpty())
		})

		It("has no result", func() {
			_, ok := s.Result()
			Expect(ok).To(BeFalse())
		})

		It("recomputes the preview for new parameters", func() {
			p := dynamo.LaunchParameters{AngleDegrees: 30, Speed: 12, PlatformHeight: 4}
			Expect(s.Preview(p)).To(Equal(predict.Path(p)))

			q := p
			q.Speed = 25
			Expect(s.Preview(q)).To(Equal(predict.Path(q)))
		})
	})

	Describe("Launch", func() {
		It("places the body on the platform with the launch velocity", func() {
			p := dynamo.LaunchParameters{AngleDegrees: 30, Speed: 10, PlatformHeight: 5}
			Expect(s.Launch(cannonball, p)).To(Succeed())

			Expect(s.State()).To(Equal(dynamo.Flying))
			k := s.Kinematics()
			Expect(k.Position).To(Equal(dynamo.Vec2{X: 0, Y: 5}))
			Expect(k.Velocity.X).To(BeNumerically("~", 10*math.Cos(math.Pi/6), 1e-12))
			Expect(k.Velocity.Y).To(BeNumerically("~", 5, 1e-12))
			Expect(k.Elapsed).To(BeZero())
			Expect(k.MaxHeight).To(Equal(5.0))
			Expect(s.Path()).To(BeEmpty())
		})

		It("clamps out-of-range angles and heights", func() {
			Expect(s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: 120, Speed: 10, PlatformHeight: -3})).To(Succeed())
			sn := s.Snapshot()
			Expect(sn.Params.AngleDegrees).To(Equal(90.0))
			Expect(sn.Params.PlatformHeight).To(BeZero())
			Expect(sn.Kinematics.Velocity.X).To(BeZero())
		})

		It("rejects non-finite parameters and leaves the session idle", func() {
			err := s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: math.NaN(), Speed: 10})
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
			Expect(s.State()).To(Equal(dynamo.Idle))

			err = s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: 45, Speed: -1})
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
		})

		It("rejects an invalid projectile", func() {
			bad := catalog.Spec{ID: "feather", Body: dynamo.Body{Mass: 0, Diameter: 0.1}}
			Expect(s.Launch(bad, dynamo.LaunchParameters{Speed: 10})).To(MatchError(dynamo.ErrInvalidParameter))
			Expect(s.State()).To(Equal(dynamo.Idle))
		})

		It("resolves projectiles by id", func() {
			Expect(s.LaunchByID("golfball", dynamo.LaunchParameters{AngleDegrees: 45, Speed: 20})).To(Succeed())
			Expect(s.Snapshot().Projectile.ID).To(Equal("golfball"))
		})

		It("surfaces unknown ids without touching state", func() {
			err := s.LaunchByID("anvil", dynamo.LaunchParameters{AngleDegrees: 45, Speed: 20})
			Expect(err).To(MatchError(dynamo.ErrUnknownProjectile))
			Expect(s.State()).To(Equal(dynamo.Idle))
		})

		It("is a no-op while flying", func() {
			Expect(s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: 45, Speed: 20})).To(Succeed())
			Expect(s.Tick(frame)).To(Succeed())
			before := s.Snapshot()

			Expect(s.LaunchByID("golfball", dynamo.LaunchParameters{AngleDegrees: 10, Speed: 5, PlatformHeight: 20})).To(Succeed())
			Expect(s.Snapshot()).To(Equal(before))
		})

		It("starts a fresh flight after landing", func() {
			Expect(s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: 45, Speed: 10})).To(Succeed())
			fly(s)

			Expect(s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: 60, Speed: 15})).To(Succeed())
			Expect(s.State()).To(Equal(dynamo.Flying))
			Expect(s.Path()).To(BeEmpty())
			_, ok := s.Result()
			Expect(ok).To(BeFalse())
		})
	})

	Describe("flying to the ground", func() {
		It("matches the closed form at 45° and 20 m/s", func() {
			Expect(s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: 45, Speed: 20})).To(Succeed())
			r := fly(s)

			Expect(r.Range).To(BeNumerically("~", 40.82, 40.82*0.02))
			Expect(r.TimeOfFlight).To(BeNumerically("~", 2.886, 2.886*0.02))
			Expect(r.MaxHeight).To(BeNumerically("~", 10.2, 10.2*0.02))
		})

		It("falls straight down from rest", func() {
			Expect(s.Launch(cannonball, dynamo.LaunchParameters{Speed: 0, PlatformHeight: 20})).To(Succeed())
			r := fly(s)

			expected := math.Sqrt(2 * 20 / dynamo.Gravity)
			Expect(r.TimeOfFlight).To(BeNumerically("~", expected, expected*0.02))
			Expect(r.Range).To(BeZero())
			Expect(r.MaxHeight).To(Equal(20.0))
		})

		It("agrees with the predictor without drag", func() {
			for _, angle := range []float64{30, 45, 60, 75} {
				for _, speed := range []float64{15, 20, 30} {
					for _, h := range []float64{0, 10, 20} {
						p := dynamo.LaunchParameters{AngleDegrees: angle, Speed: speed, PlatformHeight: h}
						Expect(s.Launch(cannonball, p)).To(Succeed())
						r := fly(s)
						want := predict.Analytic(p)

						Expect(r.Range).To(BeNumerically("~", want.Range, want.Range*0.02), "range for %+v", p)
						Expect(r.TimeOfFlight).To(BeNumerically("~", want.TimeOfFlight, want.TimeOfFlight*0.02), "time for %+v", p)
					}
				}
			}
		})

		It("never flies farther with drag", func() {
			p := dynamo.LaunchParameters{AngleDegrees: 45, Speed: 25, PlatformHeight: 5}
			for _, spec := range catalog.Default().Specs() {
				Expect(s.Launch(spec, p)).To(Succeed())
				free := fly(s)

				dragged := p
				dragged.AirResistance = true
				Expect(s.Launch(spec, dragged)).To(Succeed())
				r := fly(s)

				Expect(r.Range).To(BeNumerically("<", free.Range), spec.ID)
				Expect(r.Range).To(BeNumerically("<=", predict.Analytic(p).Range), spec.ID)
				Expect(r.MaxHeight).To(BeNumerically("<", free.MaxHeight), spec.ID)
			}
		})

		It("keeps every sample above ground except the last", func() {
			Expect(s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: 60, Speed: 18, PlatformHeight: 3, AirResistance: true})).To(Succeed())
			fly(s)

			path := s.Path()
			Expect(path).NotTo(BeEmpty())
			for _, pt := range path[:len(path)-1] {
				Expect(pt.Y).To(BeNumerically(">=", 0))
			}
			Expect(path[len(path)-1].Y).To(BeNumerically("<=", 0))

			r, _ := s.Result()
			Expect(r.Range).To(Equal(path[len(path)-1].X))
		})

		It("grows the path on every tick", func() {
			Expect(s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: 80, Speed: 30})).To(Succeed())
			prev := 0
			for s.State() == dynamo.Flying {
				Expect(s.Tick(frame)).To(Succeed())
				n := len(s.Path())
				Expect(n).To(BeNumerically(">", prev))
				prev = n
			}
		})

		It("ignores non-positive deltas", func() {
			Expect(s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: 45, Speed: 20})).To(Succeed())
			Expect(s.Tick(0)).To(Succeed())
			Expect(s.Tick(-1)).To(Succeed())
			Expect(s.Path()).To(BeEmpty())
			Expect(s.Kinematics().Elapsed).To(BeZero())
		})

		It("bounds the work done for one huge frame", func() {
			Expect(s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: 90, Speed: 30, PlatformHeight: 30})).To(Succeed())
			Expect(s.Tick(60)).To(Succeed())

			Expect(len(s.Path())).To(BeNumerically("<=", clock.MaxSubsteps))
			Expect(s.Kinematics().Elapsed).To(BeNumerically("<=", clock.MaxSubsteps*clock.FixedDt+1e-9))
		})

		It("runs at a quarter speed in slow motion", func() {
			Expect(s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: 45, Speed: 20, SlowMotion: true})).To(Succeed())
			Expect(s.Tick(0.1)).To(Succeed())
			Expect(s.Kinematics().Elapsed).To(BeNumerically("~", 0.025, 1e-9))
		})

		It("ignores ticks once landed", func() {
			Expect(s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: 45, Speed: 10})).To(Succeed())
			r := fly(s)
			n := len(s.Path())

			Expect(s.Tick(1)).To(Succeed())
			Expect(s.Path()).To(HaveLen(n))
			again, _ := s.Result()
			Expect(again).To(Equal(r))
		})

		It("keeps the preview of the active flight", func() {
			p := dynamo.LaunchParameters{AngleDegrees: 45, Speed: 20}
			Expect(s.Launch(cannonball, p)).To(Succeed())
			Expect(s.Preview(dynamo.LaunchParameters{AngleDegrees: 10, Speed: 5})).To(Equal(predict.Path(p)))
		})
	})

	Describe("Reset", func() {
		It("is idempotent", func() {
			Expect(s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: 45, Speed: 20})).To(Succeed())
			Expect(s.Tick(frame)).To(Succeed())

			s.Reset()
			first := s.Snapshot()
			s.Reset()
			Expect(s.Snapshot()).To(Equal(first))
			Expect(first.State).To(Equal(dynamo.Idle))
			Expect(first.Path).To(BeEmpty())
			Expect(first.Result).To(BeNil())
		})

		It("drops pending ticks", func() {
			Expect(s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: 45, Speed: 20})).To(Succeed())
			s.Reset()
			Expect(s.Tick(frame)).To(Succeed())
			Expect(s.Path()).To(BeEmpty())
			Expect(s.State()).To(Equal(dynamo.Idle))
		})

		It("clears a landed flight", func() {
			Expect(s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: 45, Speed: 10})).To(Succeed())
			fly(s)
			s.Reset()
			_, ok := s.Result()
			Expect(ok).To(BeFalse())
			_, ok = s.Snapshot().LandingX()
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Snapshot", func() {
		It("does not alias session state", func() {
			Expect(s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: 45, Speed: 10})).To(Succeed())
			fly(s)

			sn := s.Snapshot()
			sn.Path[0] = dynamo.Vec2{X: 999, Y: 999}
			sn.Result.Range = -1
			sn.Metrics["energy_loss"] = 42

			again := s.Snapshot()
			Expect(again.Path[0]).NotTo(Equal(dynamo.Vec2{X: 999, Y: 999}))
			Expect(again.Result.Range).To(BeNumerically(">", 0))
			Expect(again.Metrics["energy_loss"]).NotTo(Equal(42.0))
		})

		It("exposes the landing marker and flight metrics", func() {
			Expect(s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: 45, Speed: 20, AirResistance: true})).To(Succeed())
			r := fly(s)

			sn := s.Snapshot()
			x, ok := sn.LandingX()
			Expect(ok).To(BeTrue())
			Expect(x).To(Equal(r.Range))
			Expect(sn.Metrics).To(HaveKey("energy_loss"))
			Expect(sn.Metrics).To(HaveKey("peak_speed"))
			Expect(sn.Metrics["energy_loss"]).To(BeNumerically(">", 0))
		})
	})

	Context("with a diverging integrator", func() {
		BeforeEach(func() {
			var err error
			s, err = flight.NewSession(flight.WithIntegrator(nanIntegrator{}))
			Expect(err).NotTo(HaveOccurred())
		})

		It("fails loudly and applies nothing", func() {
			Expect(s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: 45, Speed: 20})).To(Succeed())

			err := s.Tick(frame)
			Expect(err).To(MatchError(dynamo.ErrNonFinite))
			var stepErr *flight.StepError
			Expect(err).To(BeAssignableToTypeOf(stepErr))
			Expect(s.Path()).To(BeEmpty())
			Expect(s.Kinematics().IsFinite()).To(BeTrue())
			Expect(s.State()).To(Equal(dynamo.Flying))
		})
	})

	Context("with an observer", func() {
		It("sees every accepted sub-step", func() {
			obs := &countingObserver{}
			var err error
			s, err = flight.NewSession(flight.WithObserver(obs))
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Launch(cannonball, dynamo.LaunchParameters{AngleDegrees: 45, Speed: 15})).To(Succeed())
			fly(s)
			Expect(obs.n).To(Equal(len(s.Path())))
		})
	})
})
