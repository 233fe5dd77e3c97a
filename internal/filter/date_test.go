package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"internship-engine/internal/domain"
)

func TestDateCutoffMatches(t *testing.T) {
	cutoff := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	before := cutoff.AddDate(0, 0, -3)
	after := cutoff.AddDate(0, 0, 3)

	tests := []struct {
		name    string
		cutoff  *time.Time
		date    *time.Time
		conf    domain.DateConfidence
		want    bool
	}{
		{"no cutoff passes everything", nil, &before, domain.DateExact, true},
		{"exact date before cutoff excluded", &cutoff, &before, domain.DateExact, false},
		{"exact date after cutoff kept", &cutoff, &after, domain.DateExact, true},
		{"exact date equal to cutoff kept", &cutoff, &cutoff, domain.DateExact, true},
		{"unknown confidence always passes", &cutoff, nil, domain.DateUnknown, true},
		{"estimated confidence passes even when old", &cutoff, &before, domain.DateEstimated, true},
		{"exact confidence with nil date passes", &cutoff, nil, domain.DateExact, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DateCutoff{Cutoff: tt.cutoff}
			p := domain.Posting{DatePosted: tt.date, DateConfidence: tt.conf}
			assert.Equal(t, tt.want, f.Matches(p))
		})
	}
}
