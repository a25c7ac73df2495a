package flight_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/flight"
)

var _ = Describe("Drive", func() {
	var (
		s      *flight.Session
		ctx    context.Context
		cancel context.CancelFunc
		params dynamo.LaunchParameters
	)

	BeforeEach(func() {
		var err error
		s, err = flight.NewSession()
		Expect(err).NotTo(HaveOccurred())
		ctx, cancel = context.WithCancel(context.Background())
		DeferCleanup(func() { cancel() })
		params = dynamo.LaunchParameters{AngleDegrees: 45, Speed: 20}
	})

	It("runs a flight to the ground on synthetic frames", func() {
		Expect(s.LaunchByID("basketball", params)).To(Succeed())

		frames := flight.Synthetic(ctx, time.Unix(0, 0), time.Second/60)
		Expect(flight.Drive(ctx, s, frames)).To(Succeed())
		Expect(s.State()).To(Equal(dynamo.Landed))

		r, ok := s.Result()
		Expect(ok).To(BeTrue())
		Expect(r.Range).To(BeNumerically("~", 40.82, 40.82*0.02))
	})

	It("matches manual ticking", func() {
		Expect(s.LaunchByID("cannonball", params)).To(Succeed())
		Expect(flight.Drive(ctx, s, flight.Synthetic(ctx, time.Unix(100, 0), time.Second/60))).To(Succeed())
		driven, _ := s.Result()

		manual, err := flight.NewSession()
		Expect(err).NotTo(HaveOccurred())
		Expect(manual.LaunchByID("cannonball", params)).To(Succeed())
		for manual.State() == dynamo.Flying {
			Expect(manual.Tick((time.Second / 60).Seconds())).To(Succeed())
		}
		ticked, _ := manual.Result()

		Expect(driven.Range).To(BeNumerically("~", ticked.Range, 1e-9))
		Expect(driven.TimeOfFlight).To(BeNumerically("~", ticked.TimeOfFlight, 1e-9))
	})

	It("resets the session when cancelled", func() {
		Expect(s.LaunchByID("cannonball", params)).To(Succeed())
		cancel()

		err := flight.Drive(ctx, s, make(chan time.Time))
		Expect(err).To(MatchError(context.Canceled))
		Expect(s.State()).To(Equal(dynamo.Idle))
	})

	It("resets on cancellation even when the frame source closes first", func() {
		for i := 0; i < 50; i++ {
			sess, err := flight.NewSession()
			Expect(err).NotTo(HaveOccurred())
			Expect(sess.LaunchByID("cannonball", params)).To(Succeed())

			tctx, tcancel := context.WithCancel(context.Background())
			frames := flight.Ticker(tctx, time.Hour)
			Eventually(frames).Should(Receive())
			tcancel()

			Expect(flight.Drive(tctx, sess, frames)).To(MatchError(context.Canceled))
			Expect(sess.State()).To(Equal(dynamo.Idle))
		}
	})

	It("gives up after MaxFrames frames that carry no time", func() {
		Expect(s.LaunchByID("cannonball", params)).To(Succeed())

		err := flight.Drive(ctx, s, flight.Synthetic(ctx, time.Unix(0, 0), 0))
		Expect(err).To(MatchError(flight.ErrFrameLimit))
		Expect(s.State()).To(Equal(dynamo.Flying))
		Expect(s.Path()).To(BeEmpty())
	})

	It("reports a closed frame source", func() {
		Expect(s.LaunchByID("cannonball", params)).To(Succeed())
		frames := make(chan time.Time)
		close(frames)

		Expect(flight.Drive(ctx, s, frames)).To(MatchError(flight.ErrFramesClosed))
		Expect(s.State()).To(Equal(dynamo.Flying))
	})

	It("returns after one frame when nothing is flying", func() {
		frames := make(chan time.Time, 1)
		frames <- time.Now()
		Expect(flight.Drive(ctx, s, frames)).To(Succeed())
		Expect(s.State()).To(Equal(dynamo.Idle))
	})

	It("delivers wall-clock frames", func() {
		frames := flight.Ticker(ctx, time.Millisecond)
		Eventually(frames).Should(Receive())
		Eventually(frames).Should(Receive())
	})
})

var _ = Describe("Fly", func() {
	params := dynamo.LaunchParameters{AngleDegrees: 45, Speed: 20}

	It("flies to the ground with a fixed frame", func() {
		s, err := flight.NewSession()
		Expect(err).NotTo(HaveOccurred())
		Expect(s.LaunchByID("cannonball", params)).To(Succeed())

		r, err := flight.Fly(context.Background(), s, 1.0/60)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.TimeOfFlight).To(BeNumerically("~", 2.886, 2.886*0.02))
		Expect(s.State()).To(Equal(dynamo.Landed))
	})

	It("reports a session that was never launched", func() {
		s, err := flight.NewSession()
		Expect(err).NotTo(HaveOccurred())

		_, err = flight.Fly(context.Background(), s, 1.0/60)
		Expect(err).To(HaveOccurred())
	})

	It("stops and resets on cancellation", func() {
		s, err := flight.NewSession()
		Expect(err).NotTo(HaveOccurred())
		Expect(s.LaunchByID("cannonball", params)).To(Succeed())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = flight.Fly(ctx, s, 1.0/60)
		Expect(err).To(MatchError(context.Canceled))
		Expect(s.State()).To(Equal(dynamo.Idle))
	})
})
