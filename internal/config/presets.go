package config

import (
	"sort"

	"github.com/san-kum/lorentz/internal/billiard"
)

var Presets = map[string]map[string]*Config{
	"lorentz": {
		"classic": {
			Model: "lorentz", Integrator: "rk4", Dt: 0.01, Duration: 30.0,
			Table:     billiard.DefaultGeometry(),
			InitState: InitStateConfig{X: 2.0, Y: 0.5, VX: 1.0, VY: 0.3, Speed: 1},
		},
		"axis": {
			Model: "lorentz", Integrator: "rk4", Dt: 0.01, Duration: 20.0,
			Table:     billiard.DefaultGeometry(),
			InitState: InitStateConfig{X: -2.0, Y: 0.0, VX: 1.0, VY: 0.0, Speed: 1},
		},
		"grazing": {
			Model: "lorentz", Integrator: "rk4", Dt: 0.005, Duration: 30.0,
			Table:     billiard.DefaultGeometry(),
			InitState: InitStateConfig{X: -2.5, Y: 0.99, VX: 1.0, VY: 0.0, Speed: 1},
		},
		"large_scatterer": {
			Model: "lorentz", Integrator: "rk4", Dt: 0.005, Duration: 60.0,
			Table:     billiard.Geometry{MinX: -3, MaxX: 3, MinY: -3, MaxY: 3, Radius: 2},
			InitState: InitStateConfig{X: 2.5, Y: 2.5, VX: -0.6, VY: 0.8, Speed: 1},
		},
		"wide": {
			Model: "lorentz", Integrator: "verlet", Dt: 0.01, Duration: 60.0,
			Table:     billiard.Geometry{MinX: -6, MaxX: 6, MinY: -2, MaxY: 2, Radius: 0.5},
			InitState: InitStateConfig{X: -5.0, Y: 1.5, VX: 1.0, VY: -0.4, Speed: 1},
		},
		"random": {
			Model: "lorentz", Integrator: "rk4", Dt: 0.01, Duration: 30.0, Seed: 7,
			Table:     billiard.DefaultGeometry(),
			InitState: InitStateConfig{Random: true, Speed: 1},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
