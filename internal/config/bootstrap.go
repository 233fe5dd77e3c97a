package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureUserConfig makes sure dataDir holds a config.yml, seeding it from
// the bundled default on first run. Returns the user config path.
func EnsureUserConfig(dataDir, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	b, err := os.ReadFile(defaultPath)
	if err != nil {
		return "", fmt.Errorf("read default config: %w", err)
	}
	if err := os.WriteFile(userPath, b, 0o644); err != nil {
		return "", fmt.Errorf("seed user config: %w", err)
	}
	return userPath, nil
}
