package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"internship-engine/internal/domain"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		want        domain.Category
	}{
		{"software engineer", "Software Engineer Intern", "", domain.CategorySoftware},
		{"backend keyword", "Backend Intern", "Go services", domain.CategorySoftware},
		{"data science beats engineer", "Data Science Engineer", "", domain.CategoryData},
		{"ml in description", "Summer Intern", "work on machine learning models", domain.CategoryData},
		{"product manager never generic", "Product Manager Intern", "", domain.CategoryProduct},
		{"ux designer", "UX Designer Intern", "", domain.CategoryDesign},
		{"quant", "Quant Trading Intern", "", domain.CategoryFinance},
		{"marketing", "Growth Marketing Intern", "", domain.CategoryMarketing},
		{"no match falls through", "Summer Internship", "help out around the office", domain.CategoryOther},
		{"empty posting", "", "", domain.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.New(domain.Posting{Title: tt.title, Description: tt.description})
			assert.Equal(t, tt.want, Categorize(p))
		})
	}
}

func TestCategorizeIsDeterministic(t *testing.T) {
	p := domain.New(domain.Posting{Title: "Data Engineer Intern", Description: "backend work"})
	first := Categorize(p)
	for range 10 {
		assert.Equal(t, first, Categorize(p))
	}
}
