package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `short:"c" default:"rangetrainer.hcl" help:"Path to HCL config file"`
	Debug   bool             `help:"Enable debug logging"`

	Serve     ServeCmd     `cmd:"" help:"Run the HTTP API server"`
	Quiz      QuizCmd      `cmd:"" help:"Run an interactive quiz in the terminal"`
	Conflicts ConflictsCmd `cmd:"" help:"Scan stored situations for conflicting recommendations"`
	Import    ImportCmd    `cmd:"" help:"Import situations from a JSON file"`
	History   HistoryCmd   `cmd:"" help:"Show recent quiz sessions"`
}

func main() {
	// Optional .env for local overrides, missing file is fine
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("rangetrainer"),
		kong.Description("Preflop range trainer: quizzes, cascades and conflict detection"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}

// setupLogger builds the process logger honoring --debug and the
// configured level.
func setupLogger(debug bool, level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
		return logger
	}
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
