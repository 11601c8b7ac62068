package experiment

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/san-kum/lorentz/internal/billiard"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	if _, err := r.GetModel("lorentz", billiard.DefaultGeometry()); err != nil {
		t.Errorf("expected lorentz model: %v", err)
	}
	if _, err := r.GetModel("pendulum", billiard.DefaultGeometry()); err == nil {
		t.Error("expected error for unknown model")
	}
	if _, err := r.GetModel("lorentz", billiard.Geometry{MinX: 1, MaxX: 0}); err == nil {
		t.Error("expected error for invalid geometry")
	}

	for _, name := range []string{"euler", "rk4", "verlet", "leapfrog"} {
		if _, err := r.GetIntegrator(name); err != nil {
			t.Errorf("integrator %s: %v", name, err)
		}
	}
	if _, err := r.GetIntegrator("rk45"); err == nil {
		t.Error("expected error for unknown integrator")
	}

	if got := r.ListIntegrators(); len(got) != 4 || got[0] != "euler" {
		t.Errorf("unexpected integrator list %v", got)
	}
}

func TestExperimentRun(t *testing.T) {
	r := NewRegistry()
	g := billiard.DefaultGeometry()

	dyn, err := r.GetModel("lorentz", g)
	if err != nil {
		t.Fatal(err)
	}
	integ, _ := r.GetIntegrator("euler")

	exp := New(Config{
		Model:     "lorentz",
		InitState: []float64{0, 2, 1, 0},
		Dt:        0.01,
		Duration:  10,
		Seed:      1,
	})
	if err := exp.Setup(dyn, integ, r.DefaultMetrics(dyn, g), log.New(io.Discard)); err != nil {
		t.Fatal(err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Metrics["bounces"] != 2 {
		t.Errorf("expected 2 bounces, got %f", result.Metrics["bounces"])
	}
	if result.Metrics["containment"] != 1 {
		t.Errorf("expected full containment, got %f", result.Metrics["containment"])
	}
	if result.Metrics["speed_drift"] != 0 {
		t.Errorf("expected no speed drift, got %e", result.Metrics["speed_drift"])
	}
	if _, ok := result.Metrics["energy_drift"]; !ok {
		t.Error("expected energy drift metric")
	}
}

func TestExperimentRandomState(t *testing.T) {
	r := NewRegistry()
	g := billiard.DefaultGeometry()
	dyn, _ := r.GetModel("lorentz", g)
	integ, _ := r.GetIntegrator("rk4")

	cfg := Config{Model: "lorentz", Dt: 0.01, Duration: 1, Seed: 42, Random: true, Speed: 2}

	a := New(cfg)
	_ = a.Setup(dyn, integ, nil, nil)
	b := New(cfg)
	_ = b.Setup(dyn, integ, nil, nil)

	xa, err := a.InitialState()
	if err != nil {
		t.Fatal(err)
	}
	xb, _ := b.InitialState()
	for i := range xa {
		if xa[i] != xb[i] {
			t.Fatalf("same seed gave different states: %v vs %v", xa, xb)
		}
	}
	if !g.Contains(xa[0], xa[1], 0) {
		t.Errorf("random state %v not on the table", xa)
	}
}

func TestExperimentNotSetup(t *testing.T) {
	if _, err := New(Config{}).Run(context.Background()); err == nil {
		t.Error("expected error for experiment without setup")
	}
}
