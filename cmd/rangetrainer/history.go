package main

import (
	"context"
	"fmt"

	"github.com/w0uf/rangetrainer/internal/config"
	"github.com/w0uf/rangetrainer/internal/store"
)

// HistoryCmd lists recent quiz sessions.
type HistoryCmd struct {
	Limit   int    `default:"10" help:"Number of sessions to show"`
	Answers string `help:"Show every answer of one session id"`
}

func (c *HistoryCmd) Run(cli *CLI) error {
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

	ctx := context.Background()
	if c.Answers != "" {
		answers, err := st.SessionAnswers(ctx, c.Answers)
		if err != nil {
			return err
		}
		if len(answers) == 0 {
			fmt.Println("No answers for that session.")
			return nil
		}
		for _, a := range answers {
			mark := "✗"
			if a.IsCorrect {
				mark = "✓"
			}
			fmt.Printf("%s  %-4s level %d  gave %-7s expected %-7s  %s\n",
				mark, a.Hand, a.Level, a.Given, a.CorrectAnswer,
				a.AnsweredAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	sessions, err := st.RecentSessions(ctx, c.Limit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions yet.")
		return nil
	}
	for _, s := range sessions {
		state := "open"
		if s.EndedAt != nil {
			state = "finished"
		}
		score := 0.0
		if s.Total > 0 {
			score = float64(s.Correct) / float64(s.Total) * 100
		}
		fmt.Printf("%s  %s  %d/%d (%.0f%%)  %s\n",
			s.ID, s.StartedAt.Format("2006-01-02 15:04"), s.Correct, s.Total, score, state)
	}
	return nil
}
