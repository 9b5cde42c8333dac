package main

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/quartz"

	"github.com/w0uf/rangetrainer/internal/config"
	"github.com/w0uf/rangetrainer/internal/quiz"
	"github.com/w0uf/rangetrainer/internal/selector"
	"github.com/w0uf/rangetrainer/internal/store"
	"github.com/w0uf/rangetrainer/internal/tui"
)

// QuizCmd runs an interactive quiz in the terminal.
type QuizCmd struct {
	Count int    `help:"Number of questions, overrides the config file"`
	Seed  *int64 `help:"Deterministic RNG seed (optional)"`
}

func (c *QuizCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := setupLogger(cli.Debug, cfg.Server.LogLevel)

	count := cfg.Quiz.QuestionCount
	if c.Count > 0 {
		count = c.Count
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	rng := selector.NewRand(seed)

	st, err := store.Open(cfg.Storage.Path, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	situations, err := st.LoadAllSituations(ctx)
	if err != nil {
		return err
	}
	if len(situations) == 0 {
		return fmt.Errorf("no situations in %s, run import first", cfg.Storage.Path)
	}

	clock := quartz.NewReal()
	session := quiz.NewSession(clock)
	if err := st.CreateSession(ctx, session.ID.String(), session.StartedAt()); err != nil {
		return err
	}

	builder := newBuilder(rng, cfg, logger)
	model := tui.New(builder, session, situations, count, logger)
	if err := tui.Run(model); err != nil {
		return err
	}

	if err := st.FinishSession(ctx, session.ID.String(), clock.Now()); err != nil {
		return err
	}
	fmt.Printf("Session %s: %d/%d correct (%.0f%%)\n",
		session.ID, session.Correct, session.Total, session.Score())
	return nil
}
