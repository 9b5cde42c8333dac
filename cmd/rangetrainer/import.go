package main

import (
	"context"
	"fmt"
	"os"

	"github.com/w0uf/rangetrainer/internal/config"
	"github.com/w0uf/rangetrainer/internal/store"
)

// ImportCmd loads situations from a JSON file into the database.
type ImportCmd struct {
	File string `arg:"" help:"JSON file with an array of situations"`
}

func (c *ImportCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	logger := setupLogger(cli.Debug, cfg.Server.LogLevel)

	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := store.Open(cfg.Storage.Path, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.ImportJSON(context.Background(), f)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d situations into %s\n", n, cfg.Storage.Path)
	return nil
}
