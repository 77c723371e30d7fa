package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"casebinder/internal/model"
)

const rule = "══════════════════════════════════════════════════════════════════════"

// RenderSummary prints the human-readable run summary to w
func RenderSummary(w io.Writer, r *model.RunReport) {
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "  TRIAGE COMPLETE\n")
	fmt.Fprintf(w, "%s\n", rule)
	fmt.Fprintf(w, "  Session:               %s\n", r.SessionID)
	fmt.Fprintf(w, "  Total Exhibits:        %d\n", r.TotalExhibits)
	fmt.Fprintf(w, "  Verified:              %d (%.1f%%)\n", r.VerifiedCount, r.VerificationRate())
	fmt.Fprintf(w, "  High Priority:         %d\n", r.HighPriority)
	fmt.Fprintf(w, "  CSV Records:           %d\n", r.RecordCount)
	fmt.Fprintf(w, "  External GeoJSON:      %d\n", r.LocationCount)
	fmt.Fprintf(w, "  External Emails:       %d\n", r.EmailCount)
	if len(r.Skips) > 0 {
		fmt.Fprintf(w, "  Skipped Inputs:        %d\n", len(r.Skips))
	}

	if len(r.Categories) > 0 {
		fmt.Fprintf(w, "\n  Top Categories:\n")
		for _, cc := range topCategories(r.Categories, 5) {
			fmt.Fprintf(w, "    %-20s %d\n", capitalize(cc.name), cc.count)
		}
	}

	if r.IndexPath != "" || r.StatementPath != "" {
		fmt.Fprintf(w, "\n  Output:\n")
		if r.IndexPath != "" {
			fmt.Fprintf(w, "    Index:               %s\n", r.IndexPath)
		}
		if r.StatementPath != "" {
			fmt.Fprintf(w, "    Statement:           %s\n", r.StatementPath)
		}
	}
	fmt.Fprintf(w, "%s\n\n", rule)
}

// RenderStats prints the statistics-only view (no outputs written)
func RenderStats(w io.Writer, r *model.RunReport) {
	fmt.Fprintf(w, "\ncasebinder - statistics\n")
	fmt.Fprintf(w, "  CSV Records:      %d\n", r.RecordCount)
	fmt.Fprintf(w, "  GeoJSON Files:    %d\n", r.LocationCount)
	fmt.Fprintf(w, "  Email CSVs:       %d\n", r.EmailCount)
	fmt.Fprintf(w, "  Total Evidence:   %d\n", r.RecordCount+r.LocationCount+r.EmailCount)
	if len(r.Skips) > 0 {
		fmt.Fprintf(w, "  Skipped Inputs:   %d\n", len(r.Skips))
	}
	fmt.Fprintln(w)
}

type categoryCount struct {
	name  string
	count int
}

func topCategories(categories map[string]int, n int) []categoryCount {
	counts := make([]categoryCount, 0, len(categories))
	for name, count := range categories {
		counts = append(counts, categoryCount{name, count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].name < counts[j].name
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
