package domain

import (
	"strings"
	"time"
)

// Category is the single mutually-exclusive label assigned by the classifier.
type Category string

const (
	CategorySoftware  Category = "software"
	CategoryData      Category = "data"
	CategoryProduct   Category = "product"
	CategoryDesign    Category = "design"
	CategoryFinance   Category = "finance"
	CategoryMarketing Category = "marketing"
	CategoryOther     Category = "other"
)

// Categories returns every known category in display order.
func Categories() []Category {
	return []Category{
		CategorySoftware,
		CategoryData,
		CategoryProduct,
		CategoryDesign,
		CategoryFinance,
		CategoryMarketing,
		CategoryOther,
	}
}

// DateConfidence tags how trustworthy DatePosted is.
type DateConfidence string

const (
	// DateExact means the date came from structured data (JSON-LD datePosted).
	DateExact DateConfidence = "exact"
	// DateEstimated is reserved for relative-text inference ("posted 3 days
	// ago"); no extractor produces it yet.
	DateEstimated DateConfidence = "estimated"
	// DateUnknown means no date information; DatePosted is nil.
	DateUnknown DateConfidence = "unknown"
)

// ActiveStatus is the liveness verdict for a posting URL.
type ActiveStatus string

const (
	StatusActive   ActiveStatus = "active"
	StatusInactive ActiveStatus = "inactive"
	StatusUnknown  ActiveStatus = "unknown"
)

// Posting is one discovered internship/job listing. Treat values as
// immutable once built: later pipeline stages attach category, track and
// liveness fields through the With* copy helpers, never in place.
type Posting struct {
	Title          string
	Company        string
	Location       string
	Description    string
	PostingURL     string // canonical identity anchor
	ApplyURL       string // distinct apply link, empty when same as PostingURL
	DatePosted     *time.Time
	DateConfidence DateConfidence
	Source         string       // which search provider produced it
	Category       Category     // empty until classification runs
	IsRemote       bool         // inferred from location, never un-set
	ActiveStatus   ActiveStatus // empty until the liveness check runs
	ActiveReason   string
	TrackMatch     string // pipe-joined matching track names, e.g. "cyber|it"
}

// New normalizes the raw fields and returns the canonical posting.
// Title/company/location are trimmed, confidence defaults to unknown, and
// any "remote" mention in the location sets IsRemote (an explicit true is
// kept even without the substring).
func New(p Posting) Posting {
	p.Title = strings.TrimSpace(p.Title)
	p.Company = strings.TrimSpace(p.Company)
	p.Location = strings.TrimSpace(p.Location)
	if p.DateConfidence == "" {
		p.DateConfidence = DateUnknown
	}
	if !p.IsRemote && strings.Contains(strings.ToLower(p.Location), "remote") {
		p.IsRemote = true
	}
	return p
}

// WithCategory returns a copy with the classifier's label attached.
func (p Posting) WithCategory(c Category) Posting {
	p.Category = c
	return p
}

// WithTrackMatch returns a copy with the track scorer's label attached.
func (p Posting) WithTrackMatch(label string) Posting {
	p.TrackMatch = label
	return p
}

// WithActiveStatus returns a copy with the liveness verdict attached.
func (p Posting) WithActiveStatus(s ActiveStatus, reason string) Posting {
	p.ActiveStatus = s
	p.ActiveReason = reason
	return p
}
