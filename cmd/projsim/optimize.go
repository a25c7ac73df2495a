package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/projsim/internal/catalog"
	"github.com/san-kum/projsim/internal/optim"
)

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	spec, err := catalog.Lookup(cfg.Projectile)
	if err != nil {
		return err
	}

	search := optim.NewAngleSearch(angleStep)
	search.Integrator = cfg.Integrator
	search.Frame = (time.Second / time.Duration(cfg.FrameRate)).Seconds()

	best, all, err := search.Search(cmd.Context(), spec, cfg.LaunchParameters())
	if err != nil {
		return err
	}

	ranges := make([]float64, len(all))
	for i, c := range all {
		ranges[i] = c.Result.Range
	}
	fmt.Println(asciigraph.Plot(ranges,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("range (m) by angle, %.0f° to %.0f°", all[0].Angle, all[len(all)-1].Angle)),
	))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ANGLE\tRANGE\tTIME\tAPEX")
	for _, c := range all {
		mark := ""
		if c.Angle == best.Angle {
			mark = "  <- best"
		}
		fmt.Fprintf(w, "%.1f\t%.3f\t%.3f\t%.3f%s\n", c.Angle, c.Result.Range, c.Result.TimeOfFlight, c.Result.MaxHeight, mark)
	}
	return w.Flush()
}
