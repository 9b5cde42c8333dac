package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/w0uf/rangetrainer/internal/config"
	"github.com/w0uf/rangetrainer/internal/quiz"
	"github.com/w0uf/rangetrainer/internal/selector"
	"github.com/w0uf/rangetrainer/internal/server"
	"github.com/w0uf/rangetrainer/internal/store"
)

// ServeCmd runs the HTTP API server.
type ServeCmd struct {
	Addr string `help:"Listen address, overrides the config file"`
	Seed *int64 `help:"Deterministic RNG seed (optional)"`
}

func (c *ServeCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := setupLogger(cli.Debug, cfg.Server.LogLevel)

	addr := cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("using deterministic seed", "seed", seed)
	} else {
		seed = time.Now().UnixNano()
	}
	rng := selector.NewRand(seed)

	st, err := store.Open(cfg.Storage.Path, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	builder := newBuilder(rng, cfg, logger)
	srv := server.New(addr, st, builder, quartz.NewReal(), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

// newBuilder wires the quiz builder with the configured selection
// tuning.
func newBuilder(rng *rand.Rand, cfg *config.Config, logger *log.Logger) *quiz.Builder {
	return quiz.NewBuilder(rng, logger,
		selector.WithRandomRatio(cfg.Quiz.RandomRatio),
		selector.WithProximityThreshold(cfg.Quiz.ProximityThreshold),
		selector.WithGapThreshold(cfg.Quiz.GapThreshold),
	)
}
