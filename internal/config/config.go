// Package config loads the engine's YAML configuration.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Filters struct {
		RemoteOK         bool     `yaml:"remote_ok"`
		LocationsAllow   []string `yaml:"locations_allow"`
		TargetCategories []string `yaml:"target_categories"`
	} `yaml:"filters"`

	Search struct {
		Provider         string  `yaml:"provider"` // google | brave
		MaxResults       int     `yaml:"max_results"`
		PostedWithinDays int     `yaml:"posted_within_days"` // 0 = no cutoff
		RequestsPerSec   float64 `yaml:"requests_per_sec"`
	} `yaml:"search"`

	Track struct {
		Name     string `yaml:"name"` // cyber | it | swe | data | all
		MinScore int    `yaml:"min_score"`
	} `yaml:"track"`

	Liveness struct {
		Enabled        bool `yaml:"enabled"`
		TimeoutSeconds int  `yaml:"timeout_seconds"`
		Concurrency    int  `yaml:"concurrency"`
	} `yaml:"liveness"`

	Export struct {
		Enabled bool   `yaml:"enabled"`
		DBFile  string `yaml:"db_file"`
	} `yaml:"export"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	var cfg Config
	cfg.App.DataDir = "."
	cfg.Filters.RemoteOK = true
	cfg.Search.Provider = "brave"
	cfg.Search.MaxResults = 10
	cfg.Search.RequestsPerSec = 1
	cfg.Track.Name = "all"
	cfg.Track.MinScore = 3
	cfg.Liveness.TimeoutSeconds = 8
	cfg.Liveness.Concurrency = 4
	cfg.Export.DBFile = "postings.db"
	return cfg
}

// Load reads a YAML config from path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
