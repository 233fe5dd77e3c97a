package filter

import (
	"time"

	"internship-engine/internal/domain"
)

// DateCutoff excludes postings older than a cutoff date. Deliberately
// conservative: a posting is dropped only when the cutoff is set, the date
// confidence is exact, the date is present, and it is strictly before the
// cutoff. Missing or uncertain dates always pass.
type DateCutoff struct {
	Cutoff *time.Time
}

// Matches reports whether p survives the cutoff.
func (d DateCutoff) Matches(p domain.Posting) bool {
	if d.Cutoff == nil {
		return true
	}
	if p.DateConfidence != domain.DateExact {
		return true
	}
	if p.DatePosted == nil {
		return true
	}
	return !p.DatePosted.Before(*d.Cutoff)
}
