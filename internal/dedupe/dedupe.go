// Package dedupe is stage 2: collapse records describing the same
// application into one, keeping the furthest status and the freshest
// fields.
package dedupe

import (
	"log"
	"sort"

	"jobtrack/internal/domain"
	"jobtrack/internal/store"
)

// Run rewrites the record store with one record per (company, position).
func Run(st *store.Store) (before, after int, err error) {
	records, err := st.LoadRecords()
	if err != nil {
		return 0, 0, err
	}
	before = len(records)

	reduced := Reduce(records)
	after = len(reduced)

	if err := st.SaveRecords(reduced); err != nil {
		return before, after, err
	}
	log.Printf("[dedupe] %d records -> %d (%d merged away)", before, after, before-after)
	return before, after, nil
}

// Reduce merges every group sharing a normalized (company, position) key.
// Groups keep their first-appearance order; members are folded oldest to
// newest so the result does not depend on input order.
func Reduce(records []domain.ApplicationRecord) []domain.ApplicationRecord {
	groups := map[string][]domain.ApplicationRecord{}
	var order []string

	for _, r := range records {
		k := r.Key()
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	out := make([]domain.ApplicationRecord, 0, len(order))
	for _, k := range order {
		group := groups[k]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Date != group[j].Date {
				return group[i].Date < group[j].Date // "" sorts oldest
			}
			return group[i].SourceEmailID < group[j].SourceEmailID
		})

		merged := group[0]
		for _, next := range group[1:] {
			merged = merge(merged, next)
		}
		out = append(out, merged)
	}
	return out
}

// merge folds newer into older. Empty fields fill from either side;
// conflicting non-empty fields go to the more recent record. Status never
// regresses down the progression, and on equal rank the later record wins
// (it is the most recent transition).
func merge(older, newer domain.ApplicationRecord) domain.ApplicationRecord {
	out := older

	if newer.Company != "" {
		out.Company = newer.Company
	}
	if newer.Position != "" {
		out.Position = newer.Position
	}
	if newer.Location != "" {
		out.Location = newer.Location
	}
	if newer.Date != "" {
		out.Date = newer.Date
	}

	if newer.Status != "" && newer.Status.Rank() >= out.Status.Rank() {
		out.Status = newer.Status
		out.SourceEmailID = newer.SourceEmailID
	}

	return out
}
