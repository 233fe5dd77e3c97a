// Package classify assigns a single category label to each posting.
//
// Classification is a greedy ordered scan of the keyword registry: the
// first category whose keyword list hits (case-insensitive substring over
// title + description) wins. Registry order is part of the contract:
// specific categories come before software, whose list ends in generic
// terms like "engineer" and "developer".
package classify

import (
	"strings"

	"internship-engine/internal/domain"
)

type entry struct {
	category domain.Category
	keywords []string
}

var registry = []entry{
	{domain.CategoryData, []string{
		"data science",
		"machine learning",
		"deep learning",
		"artificial intelligence",
		"computer vision",
		"natural language",
		"nlp",
		"research scientist",
		"ml engineer",
		"data engineer",
		"data analyst",
		"analytics",
		"data",
	}},
	{domain.CategoryProduct, []string{
		"product manager",
		"product management",
		"product owner",
		"program manager",
	}},
	{domain.CategoryDesign, []string{
		"user experience",
		"user interface",
		"ux researcher",
		"ux designer",
		"ui designer",
		"graphic designer",
		"visual designer",
		"design",
	}},
	{domain.CategoryFinance, []string{
		"quantitative",
		"investment banking",
		"financial analyst",
		"accounting",
		"finance",
		"trading",
		"quant",
	}},
	{domain.CategoryMarketing, []string{
		"digital marketing",
		"content marketing",
		"growth marketing",
		"seo",
		"copywriting",
		"social media",
		"marketing",
	}},
	// software last: data/product/design roles that mention "engineer"
	// must not land here.
	{domain.CategorySoftware, []string{
		"software engineer",
		"software developer",
		"backend",
		"frontend",
		"front-end",
		"back-end",
		"fullstack",
		"full-stack",
		"full stack",
		"devops",
		"site reliability",
		"sre",
		"platform engineer",
		"mobile developer",
		"ios developer",
		"android developer",
		"web developer",
		"api developer",
		"infrastructure engineer",
		"developer",
		"engineer",
	}},
}

// Categorize returns the best-matching category for p, or CategoryOther
// when nothing hits. Deterministic and total: ties resolve to the first
// registry entry.
func Categorize(p domain.Posting) domain.Category {
	haystack := strings.ToLower(p.Title + " " + p.Description)

	for _, e := range registry {
		for _, kw := range e.keywords {
			if strings.Contains(haystack, kw) {
				return e.category
			}
		}
	}
	return domain.CategoryOther
}
