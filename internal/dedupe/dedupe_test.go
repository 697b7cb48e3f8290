package dedupe

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"jobtrack/internal/domain"
	"jobtrack/internal/store"
)

func rec(company, position string, status domain.Status, date, src string) domain.ApplicationRecord {
	return domain.ApplicationRecord{
		Company:       company,
		Position:      position,
		Status:        status,
		Date:          date,
		SourceEmailID: src,
	}
}

func TestReduceMergesSameApplication(t *testing.T) {
	in := []domain.ApplicationRecord{
		rec("Acme", "Data Engineer", domain.StatusApplied, "2026-03-01", "<m1>"),
		rec("acme", "data engineer", domain.StatusInterview, "2026-03-08", "<m2>"),
	}
	out := Reduce(in)
	require.Len(t, out, 1)
	require.Equal(t, domain.StatusInterview, out[0].Status)
	require.Equal(t, "2026-03-08", out[0].Date)
	require.Equal(t, "<m2>", out[0].SourceEmailID)
}

func TestReduceStatusNeverRegresses(t *testing.T) {
	// A late courtesy mail classified "applied" must not pull the record
	// back from interview.
	in := []domain.ApplicationRecord{
		rec("Acme", "Data Engineer", domain.StatusInterview, "2026-03-08", "<m1>"),
		rec("Acme", "Data Engineer", domain.StatusApplied, "2026-03-10", "<m2>"),
	}
	out := Reduce(in)
	require.Len(t, out, 1)
	require.Equal(t, domain.StatusInterview, out[0].Status)
	require.Equal(t, "<m1>", out[0].SourceEmailID)
	// Non-status fields still take the freshest values.
	require.Equal(t, "2026-03-10", out[0].Date)
}

func TestReduceEqualRankLatestWins(t *testing.T) {
	// Offer then rejected share a rank; the most recent transition is the
	// truth.
	in := []domain.ApplicationRecord{
		rec("Acme", "Data Engineer", domain.StatusOffer, "2026-03-01", "<m1>"),
		rec("Acme", "Data Engineer", domain.StatusRejected, "2026-03-05", "<m2>"),
	}
	out := Reduce(in)
	require.Len(t, out, 1)
	require.Equal(t, domain.StatusRejected, out[0].Status)
}

func TestReduceFillsEmptyFields(t *testing.T) {
	in := []domain.ApplicationRecord{
		{Company: "Acme", Position: "Data Engineer", Location: "Remote",
			Status: domain.StatusApplied, Date: "2026-03-01", SourceEmailID: "<m1>"},
		{Company: "Acme", Position: "Data Engineer",
			Status: domain.StatusInterview, Date: "2026-03-08", SourceEmailID: "<m2>"},
	}
	out := Reduce(in)
	require.Len(t, out, 1)
	require.Equal(t, "Remote", out[0].Location, "empty fields fill from the older record")
}

func TestReduceOrderIndependent(t *testing.T) {
	base := []domain.ApplicationRecord{
		rec("Acme", "Data Engineer", domain.StatusApplied, "2026-03-01", "<m1>"),
		rec("Acme", "Data Engineer", domain.StatusInterview, "2026-03-08", "<m2>"),
		rec("Acme", "Data Engineer", domain.StatusRejected, "2026-03-20", "<m3>"),
		rec("Globex", "Analyst", domain.StatusApplied, "2026-03-02", "<m4>"),
	}
	want := Reduce(base)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]domain.ApplicationRecord, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := Reduce(shuffled)
		require.ElementsMatch(t, want, got, "merge result depends on input order")
	}
}

func TestReduceKeepsDistinctApplications(t *testing.T) {
	in := []domain.ApplicationRecord{
		rec("Acme", "Data Engineer", domain.StatusApplied, "2026-03-01", "<m1>"),
		rec("Acme", "Data Scientist", domain.StatusApplied, "2026-03-01", "<m2>"),
		rec("Globex", "Data Engineer", domain.StatusApplied, "2026-03-01", "<m3>"),
	}
	out := Reduce(in)
	require.Len(t, out, 3)
}

func TestRunRewritesStore(t *testing.T) {
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.SaveRecords([]domain.ApplicationRecord{
		rec("Acme", "Data Engineer", domain.StatusApplied, "2026-03-01", "<m1>"),
		rec("Acme", "Data Engineer", domain.StatusOffer, "2026-03-15", "<m2>"),
	}))

	before, after, err := Run(st)
	require.NoError(t, err)
	require.Equal(t, 2, before)
	require.Equal(t, 1, after)

	records, err := st.LoadRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, domain.StatusOffer, records[0].Status)
}
