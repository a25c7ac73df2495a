package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/projsim/internal/catalog"
	"github.com/san-kum/projsim/internal/config"
	"github.com/san-kum/projsim/internal/flight"
	"github.com/san-kum/projsim/internal/integrators"
	"github.com/san-kum/projsim/internal/logging"
	"github.com/san-kum/projsim/internal/viz"
)

var (
	configFile string
	preset     string
	projectile string
	integrator string
	logLevel   string
	angle      float64
	speed      float64
	height     float64
	drag       bool
	slow       bool
	frameRate  int
	theme      string
	// fly
	frame    time.Duration
	realtime bool
	csvOut   string
	jsonOut  string
	svgOut   string
	// optimize
	angleStep float64
)

// main runs the live view when no subcommand is given. It exits with status
// 1 if a command returns an error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "projsim",
		Short:        "projectile trajectory simulator",
		SilenceUsage: true,
		RunE:         runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&projectile, "projectile", config.DefaultProjectile, "projectile id")
	pf.StringVar(&integrator, "integrator", integrators.Default, "integrator")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.Float64Var(&angle, "angle", config.DefaultAngle, "launch angle in degrees [0, 90]")
	pf.Float64Var(&speed, "speed", config.DefaultSpeed, "launch speed in m/s")
	pf.Float64Var(&height, "height", config.DefaultHeight, "platform height in m")
	pf.BoolVar(&drag, "drag", true, "enable air resistance")
	pf.BoolVar(&slow, "slow", false, "slow motion")
	pf.IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&theme, "theme", viz.ThemeCyberpunk.Name, "color theme")

	flyCmd := &cobra.Command{
		Use:   "fly",
		Short: "run one flight headless and print the result",
		RunE:  runFly,
	}
	flyCmd.Flags().DurationVar(&frame, "frame", time.Second/60, "frame interval (defaults to 1/fps)")
	flyCmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames with the wall clock")
	flyCmd.Flags().StringVar(&csvOut, "csv", "", "write the flown path as CSV")
	flyCmd.Flags().StringVar(&jsonOut, "json", "", "write the flight as JSON")
	flyCmd.Flags().StringVar(&svgOut, "svg", "", "write predicted and flown paths as SVG")

	predictCmd := &cobra.Command{
		Use:   "predict",
		Short: "print the drag-free closed-form trajectory",
		RunE:  runPredict,
	}

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "list projectiles",
		RunE:  listCatalog,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators against the closed form",
		RunE:  compareIntegrators,
	}

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "search launch angles for the longest range",
		RunE:  runOptimize,
	}
	optimizeCmd.Flags().Float64Var(&angleStep, "step", 1, "angle step in degrees")

	rootCmd.AddCommand(liveCmd, flyCmd, predictCmd, catalogCmd, presetsCmd, compareCmd, optimizeCmd)
	return rootCmd
}

// resolveConfig layers preset, config file and environment, then any flag
// the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" || cfg == nil {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("projectile") {
		cfg.Projectile = projectile
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("fps") {
		cfg.FrameRate = frameRate
	}
	if flags.Changed("angle") {
		cfg.Launch.Angle = angle
	}
	if flags.Changed("speed") {
		cfg.Launch.Speed = speed
	}
	if flags.Changed("height") {
		cfg.Launch.Height = height
	}
	if flags.Changed("drag") {
		cfg.Launch.AirResistance = drag
	}
	if flags.Changed("slow") {
		cfg.Launch.SlowMotion = slow
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := catalog.Lookup(cfg.Projectile); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSession(cfg *config.Config, log zerolog.Logger) (*flight.Session, error) {
	integ, err := integrators.ByName(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	return flight.NewSession(
		flight.WithIntegrator(integ),
		flight.WithLogger(log),
	)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// The terminal belongs to the view; only errors reach stderr.
	log := logging.New(os.Stderr, "error", true)
	s, err := newSession(cfg, log)
	if err != nil {
		return err
	}

	m := viz.NewModel(s, catalog.Default(), cfg.Projectile, cfg.LaunchParameters(),
		viz.WithFrameRate(cfg.FrameRate),
		viz.WithTheme(theme),
		viz.WithLogger(log),
	)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
