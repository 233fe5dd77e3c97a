package main

import (
	"fmt"
	"io"
	"strings"

	"internship-engine/internal/domain"
	"internship-engine/internal/pipeline"
)

// printSummary writes the human-readable result table.
func printSummary(w io.Writer, sum pipeline.Summary) {
	if len(sum.Postings) == 0 {
		fmt.Fprintln(w, "No postings matched the given filters.")
		return
	}

	fmt.Fprintf(w, "\nFound %d posting(s):\n\n", len(sum.Postings))
	header := fmt.Sprintf("  %-3s  %-12s  %-40s  %-25s  %-25s  Date", "#", "Category", "Title", "Company", "Location")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, "  "+strings.Repeat("-", len(header)-2))

	for i, p := range sum.Postings {
		date := "unknown"
		if p.DatePosted != nil {
			date = p.DatePosted.Format("2006-01-02")
		}
		marker := ""
		if p.DateConfidence != domain.DateExact {
			marker = "~"
		}

		fmt.Fprintf(w, "  %-3d  %-12s  %-40s  %-25s  %-25s  %s%s\n",
			i+1,
			string(p.Category),
			clip(p.Title, 40),
			clip(p.Company, 25),
			clip(p.Location, 25),
			marker, date,
		)
		if p.TrackMatch != "" || p.ActiveStatus != "" {
			extra := []string{}
			if p.TrackMatch != "" {
				extra = append(extra, "track: "+p.TrackMatch)
			}
			if p.ActiveStatus != "" {
				extra = append(extra, fmt.Sprintf("status: %s (%s)", p.ActiveStatus, p.ActiveReason))
			}
			fmt.Fprintf(w, "       %s\n", strings.Join(extra, "  "))
		}
		fmt.Fprintf(w, "       %s\n\n", p.PostingURL)
	}

	fmt.Fprintf(w, "fetched=%d blocked=%d dropped(date=%d location=%d dup=%d category=%d track=%d)",
		sum.Fetched, sum.Blocked,
		sum.Dropped.Date, sum.Dropped.Location, sum.Dropped.Dup, sum.Dropped.Category, sum.Dropped.Track)
	if sum.Checked > 0 {
		fmt.Fprintf(w, " checked=%d", sum.Checked)
	}
	if sum.Exported > 0 {
		fmt.Fprintf(w, " exported=%d", sum.Exported)
	}
	fmt.Fprintln(w)
}

// clip shortens s to at most n characters, counting runes so multi-byte
// text is never cut mid-character.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-2]) + ".."
}
