package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/projsim/internal/catalog"
	"github.com/san-kum/projsim/internal/config"
	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/export"
	"github.com/san-kum/projsim/internal/flight"
	"github.com/san-kum/projsim/internal/logging"
	"github.com/san-kum/projsim/internal/predict"
)

func runFly(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log := logging.New(os.Stderr, cfg.LogLevel, true)

	s, err := newSession(cfg, log)
	if err != nil {
		return err
	}
	if err := s.LaunchByID(cfg.Projectile, cfg.LaunchParameters()); err != nil {
		return err
	}

	interval := frame
	if !cmd.Flags().Changed("frame") {
		interval = time.Second / time.Duration(cfg.FrameRate)
	}
	if interval <= 0 {
		return fmt.Errorf("frame interval must be positive, got %s", interval)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var frames <-chan time.Time
	if realtime {
		frames = flight.Ticker(ctx, interval)
	} else {
		frames = flight.Synthetic(ctx, time.Now(), interval)
	}

	start := time.Now()
	if err := flight.Drive(ctx, s, frames); err != nil {
		return fmt.Errorf("flight: %w", err)
	}
	log.Debug().Dur("wall", time.Since(start)).Msg("flight finished")

	sn := s.Snapshot()
	printFlight(os.Stdout, cfg, sn)

	return writeOutputs(sn)
}

func printFlight(out io.Writer, cfg *config.Config, sn flight.Snapshot) {
	p := sn.Params
	want := predict.Analytic(p)

	fmt.Fprintf(out, "%s %s  angle=%.1f° speed=%.1fm/s height=%.1fm air=%v slow=%v integrator=%s\n\n",
		sn.Projectile.Emoji, sn.Projectile.Name,
		p.AngleDegrees, p.Speed, p.PlatformHeight, p.AirResistance, p.SlowMotion, cfg.Integrator)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tFLOWN\tCLOSED FORM")
	if r := sn.Result; r != nil {
		fmt.Fprintf(w, "range\t%.3f m\t%.3f m\n", r.Range, want.Range)
		fmt.Fprintf(w, "max height\t%.3f m\t%.3f m\n", r.MaxHeight, want.MaxHeight)
		fmt.Fprintf(w, "time of flight\t%.3f s\t%.3f s\n", r.TimeOfFlight, want.TimeOfFlight)
	}
	fmt.Fprintf(w, "sub-steps\t%d\t\n", sn.Steps)
	for _, name := range []string{"peak_speed", "energy_loss"} {
		if v, ok := sn.Metrics[name]; ok {
			fmt.Fprintf(w, "%s\t%.4f\t\n", name, v)
		}
	}
	w.Flush()

	if heights := sampleHeights(sn.Path, 80); len(heights) > 1 {
		graph := asciigraph.Plot(heights,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("height (m) along the flight"),
		)
		fmt.Fprintln(out)
		fmt.Fprintln(out, graph)
	}
}

// sampleHeights picks at most n evenly spaced heights from path.
func sampleHeights(path []dynamo.Vec2, n int) []float64 {
	if len(path) == 0 {
		return nil
	}
	step := max(1, len(path)/n)
	out := make([]float64, 0, n+1)
	for i := 0; i < len(path); i += step {
		out = append(out, math.Max(path[i].Y, 0))
	}
	return out
}

func writeOutputs(sn flight.Snapshot) error {
	if csvOut != "" {
		if err := writeFile(csvOut, func(w io.Writer) error { return export.WriteCSV(w, sn) }); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", csvOut)
	}
	if jsonOut != "" {
		if err := writeFile(jsonOut, func(w io.Writer) error { return export.WriteJSON(w, sn) }); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonOut)
	}
	if svgOut != "" {
		svg := export.TrajectorySVG(sn.Predicted, sn.Path, 800, 400)
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p := cfg.LaunchParameters()
	sum := predict.Analytic(p)
	path := predict.Path(p)

	fmt.Printf("angle=%.1f° speed=%.1fm/s height=%.1fm (drag ignored)\n\n", p.AngleDegrees, p.Speed, p.PlatformHeight)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "range\t%.3f m\n", sum.Range)
	fmt.Fprintf(w, "max height\t%.3f m\n", sum.MaxHeight)
	fmt.Fprintf(w, "time of flight\t%.3f s\n", sum.TimeOfFlight)
	fmt.Fprintf(w, "samples\t%d (every %.2f s)\n", len(path), predict.SampleInterval)
	w.Flush()

	if heights := sampleHeights(path, 80); len(heights) > 1 {
		graph := asciigraph.Plot(heights,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("predicted height (m)"),
		)
		fmt.Println()
		fmt.Println(graph)
	}
	return nil
}

func listCatalog(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMASS (kg)\tDIAMETER (m)\tCd\tAREA (m²)")
	for _, spec := range catalog.Default().Specs() {
		fmt.Fprintf(w, "%s\t%s %s\t%.3f\t%.3f\t%.2f\t%.5f\n",
			spec.ID, spec.Emoji, spec.Name, spec.Mass, spec.Diameter, spec.DragCoefficient, spec.Area())
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tPROJECTILE\tANGLE\tSPEED\tHEIGHT\tAIR\tSLOW")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		l := cfg.Launch
		fmt.Fprintf(w, "%s\t%s\t%.0f°\t%.0f m/s\t%.0f m\t%v\t%v\n",
			name, cfg.Projectile, l.Angle, l.Speed, l.Height, l.AirResistance, l.SlowMotion)
	}
	return w.Flush()
}
