package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lorentz/internal/analysis"
	"github.com/san-kum/lorentz/internal/config"
	"github.com/san-kum/lorentz/internal/experiment"
	"github.com/san-kum/lorentz/internal/sim"
	"github.com/san-kum/lorentz/internal/storage"
	"github.com/spf13/cobra"
)

func experimentConfig(cfg *config.Config) experiment.Config {
	return experiment.Config{
		Model:      cfg.Model,
		Integrator: cfg.Integrator,
		Geometry:   cfg.Table,
		InitState:  cfg.GetInitState(),
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Seed:       cfg.Seed,
		Random:     cfg.InitState.Random,
		Speed:      cfg.InitState.Speed,
	}
}

// progress logs the particle position ten times per run.
type progress struct {
	logger *log.Logger
	every  int
	n      int
}

func (p *progress) OnStep(x sim.State, t float64) {
	if p.n%p.every == 0 {
		p.logger.Debug("progress", "t", t, "x", x[0], "y", x[1])
	}
	p.n++
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()

	dyn, err := registry.GetModel(cfg.Model, cfg.Table)
	if err != nil {
		return err
	}

	integ, err := registry.GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	exp := experiment.New(experimentConfig(cfg))
	metrics := registry.DefaultMetrics(dyn, cfg.Table)
	if err := exp.Setup(dyn, integ, metrics, logger); err != nil {
		return err
	}

	every := 1
	if n := int(cfg.Duration/cfg.Dt) / 10; cfg.Dt > 0 && n > 1 {
		every = n
	}
	exp.GetSimulator().AddObserver(&progress{logger: logger, every: every})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s simulation...\n", cfg.Model)
	start := time.Now()

	result, runErr := exp.Run(ctx)
	if result == nil {
		return runErr
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Model, cfg.Dt, cfg.Duration, cfg.Seed, cfg.Integrator, cfg.Table, result, runErr)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
	}

	if runErr != nil {
		return fmt.Errorf("run %s stopped early: %w", runID, runErr)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tINTEG\tTABLE\tRADIUS\tSTEPS\tSTATUS")

	for _, run := range runs {
		status := "ok"
		if run.Error != "" {
			status = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.4f\t%s\t%.2gx%.2g\t%.2g\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Table.Length(),
			run.Table.Height(),
			run.Table.Radius,
			run.Steps,
			status,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *sim.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return nil, nil, err
	}

	result := &sim.Result{
		States:  make([]sim.State, len(states)),
		Times:   times,
		Metrics: meta.Metrics,
	}
	for i, s := range states {
		result.States[i] = s
	}
	return meta, result, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if len(result.States) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(result.States))

	columns := storage.Header(len(result.States[0]))[1:]
	for varIdx, name := range columns {
		data := make([]float64, len(result.States))
		for i := range result.States {
			data[i] = result.States[i][varIdx]
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if len(result.States) == 0 {
		return fmt.Errorf("no data to plot")
	}

	if len(result.States[0]) <= xAxis || len(result.States[0]) <= yAxis || xAxis < 0 || yAxis < 0 {
		return fmt.Errorf("state dimension too small for selected axes")
	}

	columns := storage.Header(len(result.States[0]))[1:]
	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("x-axis: %s, y-axis: %s\n\n", columns[xAxis], columns[yAxis])

	portrait := &analysis.PhasePortrait2D{
		XIndex: xAxis,
		YIndex: yAxis,
		Points: make([]analysis.Point, len(result.States)),
	}
	for i, s := range result.States {
		portrait.Points[i] = analysis.Point{X: s[xAxis], Y: s[yAxis]}
	}

	fmt.Println(analysis.PhasePortraitToASCII(portrait, 70, 24))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if len(result.States) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)

	if err := w.Write(storage.Header(len(result.States[0]))); err != nil {
		return err
	}
	for i := range result.States {
		if err := w.Write(storage.Row(result.Times[i], result.States[i])); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSONStdout(meta, result)
}
