package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"internship-engine/internal/config"
	"internship-engine/internal/domain"
	"internship-engine/internal/extract"
	"internship-engine/internal/filter"
	"internship-engine/internal/liveness"
	"internship-engine/internal/pipeline"
	"internship-engine/internal/secrets"
	"internship-engine/internal/source"
	"internship-engine/internal/store"
	"internship-engine/internal/track"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Fetch, filter, and display new internship postings",
	Long: `Fetch new postings via a search provider (Brave or Google), extract
structured data, apply location / recency / category / track / dedup
filters, and print a summary. Flags override the config file.`,
	RunE: runEngine,
}

var (
	runSource           string
	runLocations        []string
	runNoRemote         bool
	runKeywords         []string
	runCategories       []string
	runTrack            string
	runMaxResults       int
	runPostedWithinDays int
	runCheckActive      bool
	runExport           bool
)

func init() {
	f := runCommand.Flags()
	f.StringVar(&runSource, "source", "", "Search provider: brave or google")
	f.StringArrayVar(&runLocations, "location", nil, "Allowed location substring (repeatable; omit to accept all)")
	f.BoolVar(&runNoRemote, "no-remote", false, "Exclude fully-remote postings")
	f.StringArrayVar(&runKeywords, "keyword", nil, "Extra keyword for every search query (repeatable)")
	f.StringArrayVar(&runCategories, "category", nil, "Keep only this category; also added to queries (repeatable)")
	f.StringVar(&runTrack, "track", "", "Target track: cyber, it, swe, data, or all")
	f.IntVar(&runMaxResults, "max-results", 0, "Maximum search results to fetch")
	f.IntVar(&runPostedWithinDays, "posted-within-days", 0, "Drop postings with an exact date older than this many days")
	f.BoolVar(&runCheckActive, "check-active", false, "Probe each surviving posting URL for liveness")
	f.BoolVar(&runExport, "export", false, "Append new postings to the local database")

	rootCmd.AddCommand(runCommand)
}

func runEngine(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	logger := newLogger()

	dataDir := os.Getenv("ENGINE_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	cfg, err := loadConfig(dataDir)
	if err != nil {
		return err
	}

	// Flag overrides, only where the flag was actually set.
	if cmd.Flags().Changed("source") {
		cfg.Search.Provider = runSource
	}
	if cmd.Flags().Changed("location") {
		cfg.Filters.LocationsAllow = runLocations
	}
	if cmd.Flags().Changed("no-remote") {
		cfg.Filters.RemoteOK = !runNoRemote
	}
	if cmd.Flags().Changed("category") {
		cfg.Filters.TargetCategories = runCategories
	}
	if cmd.Flags().Changed("track") {
		cfg.Track.Name = runTrack
	}
	if cmd.Flags().Changed("max-results") {
		cfg.Search.MaxResults = runMaxResults
	}
	if cmd.Flags().Changed("posted-within-days") {
		cfg.Search.PostedWithinDays = runPostedWithinDays
	}
	if cmd.Flags().Changed("check-active") {
		cfg.Liveness.Enabled = runCheckActive
	}
	if cmd.Flags().Changed("export") {
		cfg.Export.Enabled = runExport
	}

	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		logger.Warn(w)
	}
	if !res.OK() {
		for _, e := range res.Errors {
			fmt.Fprintln(os.Stderr, "config error:", e)
		}
		return fmt.Errorf("invalid configuration")
	}

	categories, err := parseCategories(cfg.Filters.TargetCategories)
	if err != nil {
		return err
	}
	tr, ok := track.Parse(cfg.Track.Name)
	if !ok {
		return fmt.Errorf("unknown track %q (see `engine list-tracks`)", cfg.Track.Name)
	}

	src, err := buildSource(cfg)
	if err != nil {
		return err
	}

	var cutoff filter.DateCutoff
	if cfg.Search.PostedWithinDays > 0 {
		day := time.Now().UTC().AddDate(0, 0, -cfg.Search.PostedWithinDays)
		day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		cutoff.Cutoff = &day
	}

	var checker *liveness.Checker
	if cfg.Liveness.Enabled {
		client := &http.Client{Timeout: time.Duration(cfg.Liveness.TimeoutSeconds) * time.Second}
		checker = liveness.New(client, logger)
	}

	var db *store.DB
	if cfg.Export.Enabled {
		db, err = store.Open(filepath.Join(dataDir, cfg.Export.DBFile))
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		if err := store.Migrate(db.Pool); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	sum, err := pipeline.Run(ctx, pipeline.Options{
		Source:    src,
		Extractor: extract.NewExtractor(nil, logger),
		Checker:   checker,
		DB:        db,
		Query: source.Query{
			Locations:  cfg.Filters.LocationsAllow,
			Keywords:   runKeywords,
			Categories: cfg.Filters.TargetCategories,
			TrackTerms: track.QueryTerms(tr),
		},
		Location: filter.Location{
			AllowedLocations: cfg.Filters.LocationsAllow,
			IncludeRemote:    cfg.Filters.RemoteOK,
		},
		Cutoff:      cutoff,
		Categories:  categories,
		Track:       tr,
		MinScore:    cfg.Track.MinScore,
		Concurrency: cfg.Liveness.Concurrency,
		SeenPath:    filepath.Join(dataDir, "seen_postings.txt"),
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	printSummary(os.Stdout, sum)
	return nil
}

func loadConfig(dataDir string) (config.Config, error) {
	defaultPath := filepath.Join("config", "config.yml")
	if _, err := os.Stat(defaultPath); err != nil {
		// No bundled default next to the binary; run on built-in defaults.
		return config.Default(), nil
	}

	path, err := config.EnsureUserConfig(dataDir, defaultPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("config bootstrap: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func parseCategories(names []string) ([]domain.Category, error) {
	known := map[string]domain.Category{}
	for _, c := range domain.Categories() {
		known[string(c)] = c
	}

	var out []domain.Category
	for _, name := range names {
		c, ok := known[name]
		if !ok {
			return nil, fmt.Errorf("unknown category %q (see `engine list-categories`)", name)
		}
		out = append(out, c)
	}
	return out, nil
}

func buildSource(cfg config.Config) (source.Source, error) {
	limiter := source.NewHostLimiter(cfg.Search.RequestsPerSec, 1)

	switch cfg.Search.Provider {
	case "google":
		apiKey, cseID, err := secrets.GoogleCreds()
		if err != nil {
			return nil, err
		}
		return source.NewGoogle(source.GoogleConfig{
			APIKey:     apiKey,
			CSEID:      cseID,
			MaxResults: cfg.Search.MaxResults,
		}, nil, limiter, nil), nil
	case "brave":
		apiKey, err := secrets.BraveKey()
		if err != nil {
			return nil, err
		}
		return source.NewBrave(source.BraveConfig{
			APIKey:     apiKey,
			MaxResults: cfg.Search.MaxResults,
		}, nil, limiter, nil), nil
	}
	return nil, fmt.Errorf("unknown search provider %q", cfg.Search.Provider)
}
