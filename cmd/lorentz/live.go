package main

import (
	"github.com/san-kum/lorentz/internal/viz"
	"github.com/spf13/cobra"
)

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	table, integ, x0, err := prepare(cfg, newLogger())
	if err != nil {
		return err
	}

	return viz.Run(viz.NewModel(table, integ, x0, cfg.Dt, frameRate))
}
