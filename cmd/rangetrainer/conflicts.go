package main

import (
	"context"
	"fmt"

	"github.com/w0uf/rangetrainer/internal/config"
	"github.com/w0uf/rangetrainer/internal/conflict"
	"github.com/w0uf/rangetrainer/internal/store"
)

// ConflictsCmd scans stored situations for conflicting
// recommendations.
type ConflictsCmd struct{}

func (c *ConflictsCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	logger := setupLogger(cli.Debug, cfg.Server.LogLevel)

	st, err := store.Open(cfg.Storage.Path, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	situations, err := st.LoadAllSituations(context.Background())
	if err != nil {
		return err
	}
	report := conflict.Detect(situations)
	if report.Empty() {
		fmt.Printf("No conflicts across %d situations.\n", len(situations))
		return nil
	}

	fmt.Printf("%d conflicts across %d situations:\n", len(report.Entries), len(situations))
	lastLevel := -1
	for _, e := range report.Entries {
		if e.Level != lastLevel {
			fmt.Printf("\nLevel %d:\n", e.Level)
			lastLevel = e.Level
		}
		fmt.Printf("  %-4s", e.Hand)
		for id, action := range e.Actions {
			fmt.Printf("  situation %d: %s", id, action)
		}
		fmt.Println()
	}
	return nil
}
