package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"jobtrack/internal/domain"
)

func sample() []domain.ApplicationRecord {
	return []domain.ApplicationRecord{
		{Company: "Acme", Position: "Data Engineer", Status: domain.StatusApplied, Date: "2026-03-01"},
		{Company: "Acme", Position: "Data Scientist", Status: domain.StatusInterview, Date: "2026-03-05"},
		{Company: "Globex", Position: "ML Engineer", Status: domain.StatusOffer, Date: "2026-03-10"},
		{Company: "Initech", Position: "Analyst Intern", Status: domain.StatusRejected, Date: "2026-02-20"},
	}
}

func TestCompute(t *testing.T) {
	sum := Compute(sample())

	require.Equal(t, 4, sum.Total)
	require.Equal(t, 1, sum.ByStatus[domain.StatusApplied])
	require.Equal(t, 1, sum.ByStatus[domain.StatusInterview])
	require.Equal(t, 1, sum.ByStatus[domain.StatusOffer])
	require.Equal(t, 1, sum.ByStatus[domain.StatusRejected])

	require.InDelta(t, 0.5, sum.ProgressionRate, 1e-9) // interview + offer over total
	require.InDelta(t, 0.25, sum.InterviewRate, 1e-9)
	require.InDelta(t, 0.25, sum.OfferRate, 1e-9)

	require.Equal(t, "2026-02-20", sum.EarliestDate)
	require.Equal(t, "2026-03-10", sum.LatestDate)

	// Acme leads with two applications; ties break alphabetically.
	require.Equal(t, "Acme", sum.Companies[0].Company)
	require.Equal(t, 2, sum.Companies[0].Count)
}

func TestComputeEmpty(t *testing.T) {
	sum := Compute(nil)
	require.Equal(t, 0, sum.Total)
	require.Zero(t, sum.ProgressionRate)
	require.Empty(t, sum.Companies)
}

func TestComputeIgnoresUnknownCompany(t *testing.T) {
	sum := Compute([]domain.ApplicationRecord{
		{Company: "Unknown", Status: domain.StatusApplied},
		{Company: "", Status: domain.StatusApplied},
		{Company: "Acme", Status: domain.StatusApplied},
	})
	require.Len(t, sum.Companies, 1)
	require.Equal(t, "Acme", sum.Companies[0].Company)
}

func TestComputeTitleKeywords(t *testing.T) {
	sum := Compute(sample())

	counts := map[string]int{}
	for _, k := range sum.PositionKeywords {
		counts[k.Keyword] = k.Count
	}
	require.Equal(t, 2, counts["Engineer"])
	require.Equal(t, 2, counts["Data"])
	require.Equal(t, 1, counts["Intern"])
	require.Equal(t, 1, counts["ML"])
}

func TestWriteReport(t *testing.T) {
	var b strings.Builder
	WriteReport(&b, Compute(sample()))
	out := b.String()

	require.Contains(t, out, "Total Applications: 4")
	require.Contains(t, out, "applied: 1 (25.0%)")
	require.Contains(t, out, "Interview Rate: 25.0%")
	require.Contains(t, out, "Acme: 2")
	require.Contains(t, out, "Earliest: 2026-02-20")
}

func TestWriteReportEmpty(t *testing.T) {
	var b strings.Builder
	WriteReport(&b, Compute(nil))
	out := b.String()

	require.Contains(t, out, "Total Applications: 0")
	require.NotContains(t, out, "Conversion Rates")
}
