package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/projsim/internal/flight"
	"github.com/san-kum/projsim/internal/integrators"
	"github.com/san-kum/projsim/internal/predict"
)

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	base := cfg.LaunchParameters()
	base.SlowMotion = false
	want := predict.Analytic(base)
	dt := (time.Second / time.Duration(cfg.FrameRate)).Seconds()

	fmt.Printf("%s  angle=%.1f° speed=%.1fm/s height=%.1fm frame=%.4fs\n",
		cfg.Projectile, base.AngleDegrees, base.Speed, base.PlatformHeight, dt)
	fmt.Printf("closed form: range=%.3fm time=%.3fs apex=%.3fm\n\n", want.Range, want.TimeOfFlight, want.MaxHeight)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tAIR\tRANGE\tERR\tTIME\tERR\tAPEX\tSTEPS")

	for _, name := range names {
		integ, err := integrators.ByName(name)
		if err != nil {
			return err
		}
		for _, air := range []bool{false, true} {
			p := base
			p.AirResistance = air

			s, err := flight.NewSession(flight.WithIntegrator(integ), flight.WithLogger(zerolog.Nop()))
			if err != nil {
				return err
			}
			if err := s.LaunchByID(cfg.Projectile, p); err != nil {
				return err
			}
			r, err := flight.Fly(cmd.Context(), s, dt)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			fmt.Fprintf(w, "%s\t%v\t%.3f\t%s\t%.3f\t%s\t%.3f\t%d\n",
				name, air,
				r.Range, relErr(r.Range, want.Range),
				r.TimeOfFlight, relErr(r.TimeOfFlight, want.TimeOfFlight),
				r.MaxHeight, s.Snapshot().Steps)
		}
	}
	return w.Flush()
}

func relErr(got, want float64) string {
	if want == 0 {
		return "-"
	}
	return fmt.Sprintf("%+.2f%%", (got-want)/math.Abs(want)*100)
}
