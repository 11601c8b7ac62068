package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/lorentz/internal/billiard"
	"github.com/san-kum/lorentz/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	verbose    bool
	dt         float64
	duration   float64
	posX       float64
	posY       float64
	velX       float64
	velY       float64
	minX       float64
	maxX       float64
	minY       float64
	maxY       float64
	radius     float64
	seed       int64
	integrator string
	random     bool
	speed      float64
	configFile string
	preset     string
	// live view
	frameRate int
	// ensemble
	particles int
	// chaos
	perturbation float64
	// phase plot axes
	xAxis int
	yAxis int
)

const model = "lorentz"

func main() {
	rootCmd := &cobra.Command{
		Use:           "lorentz",
		Short:         "lorentz gas billiard simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lorentz", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation and save it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addTableFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the table in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addTableFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(model)
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", model)
				return nil
			}
			fmt.Printf("presets for %s:\n", model)
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	chaosCmd := &cobra.Command{
		Use:   "chaos",
		Short: "estimate the largest lyapunov exponent",
		Args:  cobra.NoArgs,
		RunE:  runChaos,
	}
	addTableFlags(chaosCmd)
	chaosCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-8, "initial separation")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run many particles with random initial conditions",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addTableFlags(ensembleCmd)
	ensembleCmd.Flags().IntVarP(&particles, "particles", "n", 16, "number of particles")

	collisionsCmd := &cobra.Command{
		Use:   "collisions",
		Short: "print the birkhoff map of obstacle collisions",
		Args:  cobra.NoArgs,
		RunE:  runCollisions,
	}
	addTableFlags(collisionsCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same initial state",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	addTableFlags(compareCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, phaseCmd, exportCSVCmd, exportJSONCmd, liveCmd, presetsCmd, chaosCmd, ensembleCmd, collisionsCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		newLogger().Error(err)
		os.Exit(1)
	}
}

// addTableFlags registers the geometry, initial state and integration flags.
func addTableFlags(cmd *cobra.Command) {
	g := billiard.DefaultGeometry()
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&posX, "x", config.DefaultX, "initial x")
	cmd.Flags().Float64Var(&posY, "y", config.DefaultY, "initial y")
	cmd.Flags().Float64Var(&velX, "vx", config.DefaultVX, "initial x velocity")
	cmd.Flags().Float64Var(&velY, "vy", config.DefaultVY, "initial y velocity")
	cmd.Flags().Float64Var(&minX, "minx", g.MinX, "left wall")
	cmd.Flags().Float64Var(&maxX, "maxx", g.MaxX, "right wall")
	cmd.Flags().Float64Var(&minY, "miny", g.MinY, "bottom wall")
	cmd.Flags().Float64Var(&maxY, "maxy", g.MaxY, "top wall")
	cmd.Flags().Float64Var(&radius, "radius", g.Radius, "obstacle radius")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	cmd.Flags().BoolVar(&random, "random", false, "random initial position and direction")
	cmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "speed of random initial states")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file and flags. Keys present in the
// config file override the preset; flags set on the command line override both.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	floats := []struct {
		name string
		dst  *float64
		val  float64
	}{
		{"dt", &cfg.Dt, dt},
		{"time", &cfg.Duration, duration},
		{"x", &cfg.InitState.X, posX},
		{"y", &cfg.InitState.Y, posY},
		{"vx", &cfg.InitState.VX, velX},
		{"vy", &cfg.InitState.VY, velY},
		{"speed", &cfg.InitState.Speed, speed},
		{"minx", &cfg.Table.MinX, minX},
		{"maxx", &cfg.Table.MaxX, maxX},
		{"miny", &cfg.Table.MinY, minY},
		{"maxy", &cfg.Table.MaxY, maxY},
		{"radius", &cfg.Table.Radius, radius},
	}
	for _, f := range floats {
		if flags.Changed(f.name) {
			*f.dst = f.val
		}
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("random") {
		cfg.InitState.Random = random
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cfg.Model == "" {
		cfg.Model = model
	}

	if err := cfg.Table.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          model,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
