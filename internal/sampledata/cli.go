package sampledata

import (
	"os"
)

// ShowHelp prints usage information for the dataset generator.
func ShowHelp() {
	os.Stdout.WriteString(`Quizboard Dataset Generator
===========================

Writes a synthetic quiz sheet in the export layout the server reads and,
optionally, checks a running server's ranking against it.

Usage:
  go run ./cmd/gen-dataset [options]

Options:
  -participants int
        Number of participant rows (default 200)
  -quizzes int
        Number of quiz columns (default 10)
  -dirty-every int
        Every n-th row gets an unparsable score or a blank participation (default 0, off)
  -seed int
        Seed for reproducible output (default 0, random)
  -o string
        Output file, .csv or .xlsx (default "data/leaderboard.csv")
  -sheet string
        Worksheet name for .xlsx output
  -verify string
        Base URL of a running server to verify, e.g. http://localhost:9080
  -timeout duration
        HTTP request timeout (default 10s)
  -help
        Show this help message

Examples:
  # Reproducible sheet for the default server config
  go run ./cmd/gen-dataset -seed 42

  # Workbook with degraded rows, then verify the server
  go run ./cmd/gen-dataset -o data/board.xlsx -dirty-every 7 -verify http://localhost:9080
`)
}
