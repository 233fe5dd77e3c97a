package dedup

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"
)

// LoadSeen reads one fingerprint per line from path. A missing file is not
// an error; the first run starts with an empty set.
func LoadSeen(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open seen set: %w", err)
	}
	defer f.Close()

	var hashes []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		h := strings.TrimSpace(sc.Text())
		if h != "" {
			hashes = append(hashes, h)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read seen set: %w", err)
	}
	return hashes, nil
}

// SaveSeen writes the fingerprint set to path, one per line, sorted for
// stable diffs. An flock around the write keeps overlapping cron runs from
// interleaving partial writes.
func SaveSeen(path string, hashes []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create seen set dir: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock seen set: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	sorted := append([]string(nil), hashes...)
	sort.Strings(sorted)

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create seen set: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, h := range sorted {
		fmt.Fprintln(w, h)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write seen set: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close seen set: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace seen set: %w", err)
	}
	return nil
}
