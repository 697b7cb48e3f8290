// Package export is stage 3: a pure projection of the record store to
// CSV. No transformation beyond formatting.
package export

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"jobtrack/internal/domain"
	"jobtrack/internal/store"
)

// Header is the fixed CSV column set, in order.
var Header = []string{"company", "position", "location", "status", "date", "source_email_id"}

type Options struct {
	Output   string   // defaults to the store's CSV path
	Statuses []string // keep only these statuses; empty keeps all
	Since    string   // YYYY-MM-DD inclusive
	Until    string   // YYYY-MM-DD inclusive
	Limit    int      // rows after sorting date desc; 0 = all
}

func Run(st *store.Store, opts Options) (rows int, err error) {
	records, err := st.LoadRecords()
	if err != nil {
		return 0, err
	}

	records = Filter(records, opts)

	out := opts.Output
	if out == "" {
		out = st.CSVPath()
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return 0, fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return 0, err
	}
	for _, r := range records {
		row := []string{r.Company, r.Position, r.Location, string(r.Status), r.Date, r.SourceEmailID}
		if err := w.Write(row); err != nil {
			return rows, err
		}
		rows++
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return rows, fmt.Errorf("write csv: %w", err)
	}

	log.Printf("[export] wrote %d rows to %s", rows, out)
	return rows, nil
}

// Filter applies the status/date filters and sorts date descending
// (undated records last), then truncates to the limit.
func Filter(records []domain.ApplicationRecord, opts Options) []domain.ApplicationRecord {
	keepStatus := map[domain.Status]bool{}
	for _, s := range opts.Statuses {
		keepStatus[domain.Status(strings.ToLower(strings.TrimSpace(s)))] = true
	}

	var out []domain.ApplicationRecord
	for _, r := range records {
		if len(keepStatus) > 0 && !keepStatus[r.Status] {
			continue
		}
		if opts.Since != "" && (r.Date == "" || r.Date < opts.Since) {
			continue
		}
		if opts.Until != "" && (r.Date == "" || r.Date > opts.Until) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date == "" {
			return false
		}
		if out[j].Date == "" {
			return true
		}
		return out[i].Date > out[j].Date
	})

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}
