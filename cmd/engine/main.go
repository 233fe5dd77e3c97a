// Package main is the internship-engine CLI: discover internship
// postings via search providers, filter them, and print or export what
// survives.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "engine",
	Short: "Discover and track internship opportunities",
	Long: `Fetch internship postings via a search provider (Brave or Google),
extract structured data from the posting pages, apply location, recency,
category, track and dedup filters, and print a summary of what is new.`,
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	// Credentials may live in a local .env during development.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
