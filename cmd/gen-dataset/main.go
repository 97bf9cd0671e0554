package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/quizboard/internal/sampledata"
	"github.com/okian/quizboard/pkg/logger"
)

const defaultRunTimeout = 5 * time.Minute

func main() {
	var (
		participants = flag.Int("participants", sampledata.DefaultParticipants, "Number of participant rows")
		quizzes      = flag.Int("quizzes", sampledata.DefaultQuizzes, "Number of quiz columns")
		dirtyEvery   = flag.Int("dirty-every", 0, "Degrade every n-th row (0 disables)")
		seed         = flag.Int64("seed", 0, "Seed for reproducible output (0 is random)")
		output       = flag.String("o", "data/leaderboard.csv", "Output file (.csv or .xlsx)")
		sheet        = flag.String("sheet", "", "Worksheet name for .xlsx output")
		verifyURL    = flag.String("verify", "", "Base URL of a running server to verify")
		timeout      = flag.Duration("timeout", sampledata.DefaultTimeout, "HTTP request timeout")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		sampledata.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &sampledata.Config{
		Participants: *participants,
		Quizzes:      *quizzes,
		DirtyEvery:   *dirtyEvery,
		Seed:         *seed,
		OutputFile:   *output,
		Sheet:        *sheet,
		BaseURL:      *verifyURL,
		Timeout:      *timeout,
	}

	if err := sampledata.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "dataset generation failed", logger.Error(err))
		cancel()
		os.Exit(1)
	}
}
