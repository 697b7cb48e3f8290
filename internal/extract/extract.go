// Package extract is stage 1: pull candidate emails from the mailbox,
// classify the survivors, append records to the store.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"jobtrack/internal/classify"
	"jobtrack/internal/config"
	"jobtrack/internal/domain"
	"jobtrack/internal/mailbox"
	"jobtrack/internal/store"
)

// Mailbox lists candidate messages. The IMAP client satisfies this; tests
// supply fakes.
type Mailbox interface {
	Search(ctx context.Context, q mailbox.Query) ([]mailbox.EmailMessage, error)
}

// Classifier turns one email's text into structured fields or an
// explicit "no match" signal.
type Classifier interface {
	Classify(ctx context.Context, content string) (classify.Result, error)
}

type Options struct {
	Since time.Time
	Until time.Time
	Limit int // max records to add this run; 0 = unbounded
}

// Summary is the end-of-stage report: every fetched message lands in
// exactly one of added/skipped/failed or was already processed.
type Summary struct {
	Fetched          int
	AlreadyProcessed int
	Added            int
	Skipped          int
	Failed           int
}

const checkpointEvery = 10

// Run executes the extract stage. Per-message classification failures are
// contained; auth and file I/O failures abort the stage.
func Run(ctx context.Context, st *store.Store, cfg config.Config, mb Mailbox, cl Classifier, opts Options) (Summary, error) {
	var sum Summary

	records, err := st.LoadRecords()
	if err != nil {
		return sum, err
	}
	processed, err := st.LoadProcessedIDs()
	if err != nil {
		return sum, err
	}
	log.Printf("[extract] loaded %d records, %d processed ids", len(records), len(processed))

	msgs, err := mb.Search(ctx, mailbox.Query{Since: opts.Since, Until: opts.Until, Max: cfg.Mailbox.FetchMax})
	if err != nil {
		return sum, fmt.Errorf("mailbox search: %w", err)
	}
	sum.Fetched = len(msgs)
	log.Printf("[extract] %d candidate emails", len(msgs))

	// Records are only ever persisted after their id is in the processed
	// set, so a crash between the two writes cannot leave a record whose
	// source id the set does not know.
	save := func() error {
		if err := st.SaveProcessedIDs(processed); err != nil {
			return err
		}
		return st.SaveRecords(records)
	}

	for _, em := range msgs {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		id := em.ID()
		if processed.Has(id) {
			sum.AlreadyProcessed++
			continue
		}
		if opts.Limit > 0 && sum.Added >= opts.Limit {
			log.Printf("[extract] reached limit of %d new records", opts.Limit)
			break
		}

		// Filter-skipped ids are NOT marked processed: the processed set
		// holds ids the classifier has answered for. Re-filtering on a
		// later run is a string match, so idempotence costs nothing.
		if keep, reason := ShouldClassify(cfg, em.Subject, em.Snippet); !keep {
			sum.Skipped++
			log.Printf("[extract] skipped (%s) subject=%q", reason, em.Subject)
			continue
		}

		content := fmt.Sprintf("From: %s\nSubject: %s\n\n%s", em.From, em.Subject, em.Body)

		res, cerr := cl.Classify(ctx, content)
		switch {
		case cerr == nil:
			// fall through to record construction
		case errors.Is(cerr, classify.ErrNotApplication):
			processed.Add(id)
			sum.Skipped++
			continue
		default:
			var authErr *classify.AuthError
			if errors.As(cerr, &authErr) {
				if serr := save(); serr != nil {
					log.Printf("[extract] checkpoint save during abort: %v", serr)
				}
				return sum, cerr
			}
			var malErr *classify.MalformedError
			if errors.As(cerr, &malErr) {
				// Answered but unusable; reprocessing would get the same
				// answer, so the id is burned.
				processed.Add(id)
				sum.Failed++
				log.Printf("[extract] discarded malformed result subject=%q: %v", em.Subject, cerr)
				continue
			}
			// Transient budget exhausted (or context error): leave the id
			// unprocessed so the next run retries it.
			sum.Failed++
			log.Printf("[extract] classification failed subject=%q: %v", em.Subject, cerr)
			continue
		}

		rec := domain.ApplicationRecord{
			Company:       res.Company,
			Position:      res.Position,
			Location:      res.Location,
			Status:        domain.NormalizeStatus(res.Status),
			Date:          em.Date.Format("2006-01-02"),
			SourceEmailID: id,
		}
		if em.Date.IsZero() {
			rec.Date = ""
		}

		processed.Add(id)
		records = append(records, rec)
		sum.Added++
		log.Printf("[extract] added company=%q position=%q status=%s", rec.Company, rec.Position, rec.Status)

		if sum.Added%checkpointEvery == 0 {
			if err := save(); err != nil {
				return sum, err
			}
		}
	}

	if err := save(); err != nil {
		return sum, err
	}

	log.Printf("[extract] done fetched=%d added=%d skipped=%d failed=%d already=%d",
		sum.Fetched, sum.Added, sum.Skipped, sum.Failed, sum.AlreadyProcessed)
	return sum, nil
}
