// Package stats is stage 4: read-only aggregates over the record store.
package stats

import (
	"sort"
	"strings"

	"jobtrack/internal/domain"
)

// titleKeywords are tallied across position titles for the report.
var titleKeywords = map[string][]string{
	"Data":      {"data"},
	"Science":   {"scientist", "science"},
	"Analytics": {"analyst", "analytics"},
	"Intern":    {"intern"},
	"Engineer":  {"engineer"},
	"ML":        {"machine learning", " ml "},
}

// Compute derives the full summary from the record collection.
func Compute(records []domain.ApplicationRecord) domain.StatsSummary {
	sum := domain.StatsSummary{
		Total:    len(records),
		ByStatus: map[domain.Status]int{},
	}
	if len(records) == 0 {
		return sum
	}

	companies := map[string]int{}
	keywords := map[string]int{}

	for _, r := range records {
		if r.Status != "" {
			sum.ByStatus[r.Status]++
		}
		if c := strings.TrimSpace(r.Company); c != "" && !strings.EqualFold(c, "unknown") {
			companies[c]++
		}
		if r.Date != "" {
			if sum.EarliestDate == "" || r.Date < sum.EarliestDate {
				sum.EarliestDate = r.Date
			}
			if sum.LatestDate == "" || r.Date > sum.LatestDate {
				sum.LatestDate = r.Date
			}
		}

		title := " " + strings.ToLower(r.Position) + " "
		for label, needles := range titleKeywords {
			for _, n := range needles {
				if strings.Contains(title, n) {
					keywords[label]++
					break
				}
			}
		}
	}

	for c, n := range companies {
		sum.Companies = append(sum.Companies, domain.CompanyCount{Company: c, Count: n})
	}
	sort.Slice(sum.Companies, func(i, j int) bool {
		if sum.Companies[i].Count != sum.Companies[j].Count {
			return sum.Companies[i].Count > sum.Companies[j].Count
		}
		return sum.Companies[i].Company < sum.Companies[j].Company
	})

	for k, n := range keywords {
		sum.PositionKeywords = append(sum.PositionKeywords, domain.KeywordCount{Keyword: k, Count: n})
	}
	sort.Slice(sum.PositionKeywords, func(i, j int) bool {
		if sum.PositionKeywords[i].Count != sum.PositionKeywords[j].Count {
			return sum.PositionKeywords[i].Count > sum.PositionKeywords[j].Count
		}
		return sum.PositionKeywords[i].Keyword < sum.PositionKeywords[j].Keyword
	})

	interviews := sum.ByStatus[domain.StatusInterview]
	offers := sum.ByStatus[domain.StatusOffer]

	total := float64(sum.Total)
	sum.ProgressionRate = float64(interviews+offers) / total
	sum.InterviewRate = float64(interviews) / total
	sum.OfferRate = float64(offers) / total

	return sum
}
