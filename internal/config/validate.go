package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg plus any errors
// and warnings. Errors make the config unusable; warnings are advisory.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Filters.LocationsAllow = trimList(out.Filters.LocationsAllow)
	out.Filters.TargetCategories = trimList(out.Filters.TargetCategories)
	out.Search.Provider = strings.ToLower(strings.TrimSpace(out.Search.Provider))
	out.Track.Name = strings.ToLower(strings.TrimSpace(out.Track.Name))

	// ---- Validation rules ----

	switch out.Search.Provider {
	case "google", "brave":
	case "":
		res.addErr("search.provider is required (google or brave)")
	default:
		res.addErr("search.provider %q is not supported (use google or brave)", out.Search.Provider)
	}

	if out.Search.MaxResults <= 0 {
		res.addErr("search.max_results must be > 0")
	}
	if out.Search.PostedWithinDays < 0 {
		res.addErr("search.posted_within_days must be >= 0 (0 disables the cutoff)")
	}
	if out.Search.RequestsPerSec <= 0 {
		res.addErr("search.requests_per_sec must be > 0")
	} else if out.Search.RequestsPerSec > 5 {
		res.addWarn("search.requests_per_sec is high (%.1f) and may trigger provider rate limits.", out.Search.RequestsPerSec)
	}

	// filters sanity
	if !out.Filters.RemoteOK && len(out.Filters.LocationsAllow) == 0 {
		res.addWarn("remote_ok is false and locations_allow is empty; you may filter out almost everything.")
	}
	if len(out.Filters.LocationsAllow) > 50 {
		res.addWarn("locations_allow has %d entries; consider tightening it for faster filtering.", len(out.Filters.LocationsAllow))
	}

	if out.Track.MinScore < 0 {
		res.addErr("track.min_score must be >= 0")
	}

	if out.Liveness.Enabled {
		if out.Liveness.TimeoutSeconds <= 0 {
			res.addErr("liveness.timeout_seconds must be > 0 when liveness is enabled")
		}
		if out.Liveness.Concurrency <= 0 {
			res.addErr("liveness.concurrency must be > 0 when liveness is enabled")
		} else if out.Liveness.Concurrency > 16 {
			res.addWarn("liveness.concurrency is high (%d); job boards may block bursts.", out.Liveness.Concurrency)
		}
	}

	if out.Export.Enabled && strings.TrimSpace(out.Export.DBFile) == "" {
		res.addErr("export.db_file is required when export.enabled=true")
	}

	return out, res
}
