package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/lorentz/internal/analysis"
	"github.com/san-kum/lorentz/internal/config"
	"github.com/san-kum/lorentz/internal/experiment"
	"github.com/san-kum/lorentz/internal/physics"
	"github.com/san-kum/lorentz/internal/sim"
	"github.com/spf13/cobra"
)

// prepare builds the table model and integrator for cfg and draws the
// initial state.
func prepare(cfg *config.Config, logger *log.Logger) (*physics.Lorentz, sim.Integrator, sim.State, error) {
	registry := experiment.NewRegistry()
	integ, err := registry.GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, nil, nil, err
	}

	table := physics.NewLorentz(cfg.Table)
	exp := experiment.New(experimentConfig(cfg))
	if err := exp.Setup(table, integ, nil, logger); err != nil {
		return nil, nil, nil, err
	}
	x0, err := exp.InitialState()
	if err != nil {
		return nil, nil, nil, err
	}
	return table, integ, x0, nil
}

func runChaos(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()

	table, integ, x0, err := prepare(cfg, logger)
	if err != nil {
		return err
	}

	fmt.Printf("estimating lyapunov exponent (dt=%.4f, duration=%.1f)\n", cfg.Dt, cfg.Duration)
	logger.Debug("initial state", "x0", x0, "perturbation", perturbation)

	start := time.Now()
	lambda, err := analysis.LyapunovExponent(table, integ, x0, cfg.Dt, cfg.Duration, perturbation)
	if err != nil {
		return fmt.Errorf("lyapunov estimate failed: %w", err)
	}

	fmt.Printf("largest lyapunov exponent: %.6f\n", lambda)
	fmt.Printf("bounces: %d\n", table.Bounces())
	fmt.Printf("elapsed: %v\n", time.Since(start))
	if lambda > 0.01 {
		fmt.Println("trajectory is chaotic")
	} else {
		fmt.Println("no exponential divergence detected")
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()

	if particles <= 0 {
		return fmt.Errorf("particles must be positive, got %d", particles)
	}

	registry := experiment.NewRegistry()
	if _, err := registry.GetIntegrator(cfg.Integrator); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	sampler := physics.NewLorentz(cfg.Table)
	x0s := make([]sim.State, particles)
	for i := range x0s {
		x0s[i] = sampler.RandomState(rng, cfg.InitState.Speed)
	}

	ens := sim.NewEnsemble(
		func() sim.System { return physics.NewLorentz(cfg.Table) },
		func() sim.Integrator {
			integ, _ := registry.GetIntegrator(cfg.Integrator)
			return integ
		},
		func() []sim.Metric { return registry.DefaultMetrics(sampler, cfg.Table) },
	)
	ens.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d particles (seed=%d, duration=%.1f)\n\n", particles, cfg.Seed, cfg.Duration)
	start := time.Now()
	results, runErr := ens.Run(ctx, x0s, sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, Seed: cfg.Seed, ValidateState: true})
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tX0\tY0\tANGLE\tBOUNCES\tSPEED DRIFT\tSTEPS\tSTATUS")

	total, counted, failed := 0.0, 0, 0
	minB, maxB := math.Inf(1), math.Inf(-1)
	for i, res := range results {
		x0 := x0s[i]
		angle := math.Atan2(x0[3], x0[2])
		if res == nil {
			failed++
			fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%.3f\t-\t-\t-\tinvalid\n", i, x0[0], x0[1], angle)
			continue
		}
		status := "ok"
		if len(res.Errors) > 0 {
			status = "failed"
			failed++
		}
		b := res.Metrics["bounces"]
		total += b
		counted++
		minB = math.Min(minB, b)
		maxB = math.Max(maxB, b)
		fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%.3f\t%.0f\t%.2e\t%d\t%s\n",
			i, x0[0], x0[1], angle, b, res.Metrics["speed_drift"], res.StepsTaken, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	if counted > 0 {
		fmt.Printf("bounces: mean %.2f, min %.0f, max %.0f\n", total/float64(counted), minB, maxB)
	}
	fmt.Printf("failed: %d/%d\n", failed, len(results))
	fmt.Printf("elapsed: %v\n", elapsed)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Warn("ensemble had failures", "first", runErr)
	}
	return nil
}

func runCollisions(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()

	table, integ, x0, err := prepare(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cm, runErr := analysis.GenerateCollisionMap(ctx, table, integ, x0, cfg.Dt, cfg.Duration, logger)

	fmt.Printf("birkhoff map: %d obstacle hits, %d wall hits\n", len(cm.Hits), cm.WallHits)
	if cm.MaskedHits > 0 {
		fmt.Printf("masked discriminant: %d hits\n", cm.MaskedHits)
	}
	fmt.Println("horizontal: contact angle phi in [-pi, pi], vertical: sin(alpha) in [-1, 1]")
	fmt.Println()
	fmt.Println(cm.ToASCII(70, 20))

	if runErr != nil {
		return fmt.Errorf("collision map incomplete: %w", runErr)
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()
	registry := experiment.NewRegistry()

	fmt.Printf("comparing integrators (dt=%.4f, duration=%.1f)\n\n", cfg.Dt, cfg.Duration)
	fmt.Printf("%-10s  %-10s  %-10s  %-8s  %-12s  %-10s\n", "integrator", "final_x", "final_y", "bounces", "speed_drift", "time_ms")
	fmt.Println(strings.Repeat("-", 70))

	for _, name := range args {
		c := *cfg
		c.Integrator = name
		table, integ, x0, err := prepare(&c, logger)
		if err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}

		s := sim.New(table, integ)
		s.SetLogger(logger)
		for _, m := range registry.DefaultMetrics(table, c.Table) {
			s.AddMetric(m)
		}

		start := time.Now()
		result, err := s.Run(context.Background(), x0, sim.Config{Dt: c.Dt, Duration: c.Duration, ValidateState: true})
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}

		final := result.Final()
		fmt.Printf("%-10s  %10.6f  %10.6f  %8d  %12.2e  %10.2f\n",
			name, final[0], final[1], table.Bounces(), result.Metrics["speed_drift"], float64(elapsed.Microseconds())/1000)
	}

	return nil
}
