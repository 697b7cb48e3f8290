package stats

import (
	"fmt"
	"io"
	"strings"

	"jobtrack/internal/domain"
)

var statusDescriptions = map[domain.Status]string{
	domain.StatusApplied:   "Initial applications submitted",
	domain.StatusInterview: "Assessments and interviews",
	domain.StatusOffer:     "Job offers received",
	domain.StatusRejected:  "Rejected at any stage",
	domain.StatusOther:     "Unclassified progress",
}

// WriteReport renders the summary as the plain-text stage output.
func WriteReport(w io.Writer, sum domain.StatsSummary) {
	rule := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 40)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Job Application Statistics Report")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "\nTotal Applications: %d\n", sum.Total)

	if sum.Total == 0 {
		return
	}

	fmt.Fprintf(w, "\nHiring Process Flow:\n%s\n", thin)
	for _, s := range domain.StatusOrder {
		n := sum.ByStatus[s]
		if n == 0 {
			continue
		}
		pct := float64(n) / float64(sum.Total) * 100
		fmt.Fprintf(w, "  %s: %d (%.1f%%) - %s\n", s, n, pct, statusDescriptions[s])
	}

	fmt.Fprintf(w, "\nConversion Rates:\n%s\n", thin)
	fmt.Fprintf(w, "  Application -> Next Stage: %.1f%%\n", sum.ProgressionRate*100)
	fmt.Fprintf(w, "  Interview Rate: %.1f%%\n", sum.InterviewRate*100)
	fmt.Fprintf(w, "  Overall Offer Rate: %.1f%%\n", sum.OfferRate*100)

	if len(sum.Companies) > 0 {
		fmt.Fprintf(w, "\nTop 5 Companies Applied:\n%s\n", thin)
		top := sum.Companies
		if len(top) > 5 {
			top = top[:5]
		}
		for _, c := range top {
			fmt.Fprintf(w, "  %s: %d\n", c.Company, c.Count)
		}
	}

	if sum.EarliestDate != "" {
		fmt.Fprintf(w, "\nApplication Date Range:\n")
		fmt.Fprintf(w, "  Earliest: %s\n", sum.EarliestDate)
		fmt.Fprintf(w, "  Latest: %s\n", sum.LatestDate)
	}

	if len(sum.PositionKeywords) > 0 {
		fmt.Fprintf(w, "\nPosition Keywords:\n")
		for _, k := range sum.PositionKeywords {
			fmt.Fprintf(w, "  %s: %d\n", k.Keyword, k.Count)
		}
	}

	fmt.Fprintln(w, "\n"+rule)
}
