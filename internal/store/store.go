// Package store owns the on-disk state: the JSON record store and the
// processed-id set. Both are read fully, mutated in memory, and rewritten
// atomically; only one stage runs at a time, which a file lock enforces.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"

	"jobtrack/internal/domain"
)

const (
	recordsFile   = "job_applications.json"
	processedFile = "processed_ids.json"
	csvFile       = "job_applications.csv"
	lockFile      = ".jobtrack.lock"

	dataSubdir = "data"
	vizSubdir  = "visualizations"
)

type Store struct {
	root string
	lk   *flock.Flock
}

// Open prepares the data layout under root and takes the stage lock.
// The pipeline is strictly sequential, so a held lock means a stage is
// already running and Open fails instead of waiting.
func Open(root string) (*Store, error) {
	if root == "" {
		root = "."
	}
	if err := os.MkdirAll(filepath.Join(root, dataSubdir), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	lk := flock.New(filepath.Join(root, dataSubdir, lockFile))
	ok, err := lk.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire stage lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another stage holds the data lock; stages must not overlap")
	}

	return &Store{root: root, lk: lk}, nil
}

func (s *Store) Close() error {
	if s == nil || s.lk == nil {
		return nil
	}
	return s.lk.Unlock()
}

func (s *Store) RecordsPath() string   { return filepath.Join(s.root, dataSubdir, recordsFile) }
func (s *Store) ProcessedPath() string { return filepath.Join(s.root, dataSubdir, processedFile) }
func (s *Store) CSVPath() string       { return filepath.Join(s.root, dataSubdir, csvFile) }
func (s *Store) VizDir() string        { return filepath.Join(s.root, vizSubdir) }

// ---------------- Records ----------------

func (s *Store) LoadRecords() ([]domain.ApplicationRecord, error) {
	b, err := os.ReadFile(s.RecordsPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read record store: %w", err)
	}
	var recs []domain.ApplicationRecord
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("parse record store: %w", err)
	}
	return recs, nil
}

func (s *Store) SaveRecords(recs []domain.ApplicationRecord) error {
	if recs == nil {
		recs = []domain.ApplicationRecord{}
	}
	b, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.RecordsPath(), b); err != nil {
		return fmt.Errorf("write record store: %w", err)
	}
	return nil
}

// ---------------- Processed ids ----------------

// ProcessedIDs is the set of mailbox message ids already handled. It only
// grows; entries are never removed once written.
type ProcessedIDs map[string]struct{}

func (p ProcessedIDs) Has(id string) bool {
	_, ok := p[id]
	return ok
}

func (p ProcessedIDs) Add(id string) {
	p[id] = struct{}{}
}

func (s *Store) LoadProcessedIDs() (ProcessedIDs, error) {
	out := ProcessedIDs{}
	b, err := os.ReadFile(s.ProcessedPath())
	if errors.Is(err, os.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read processed ids: %w", err)
	}
	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		return nil, fmt.Errorf("parse processed ids: %w", err)
	}
	for _, id := range ids {
		out.Add(id)
	}
	return out, nil
}

func (s *Store) SaveProcessedIDs(ids ProcessedIDs) error {
	list := make([]string, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	sort.Strings(list) // stable file content
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.ProcessedPath(), b); err != nil {
		return fmt.Errorf("write processed ids: %w", err)
	}
	return nil
}

// ---------------- Reset ----------------

// Reset removes the pipeline outputs so a run starts clean. Missing files
// are fine; anything else is reported.
func (s *Store) Reset() (removed []string, err error) {
	targets := []string{
		s.RecordsPath(),
		s.ProcessedPath(),
		s.CSVPath(),
		filepath.Join(s.VizDir(), "status_distribution.html"),
		filepath.Join(s.VizDir(), "applications_timeline.html"),
		filepath.Join(s.VizDir(), "top_companies.html"),
	}
	for _, t := range targets {
		rmErr := os.Remove(t)
		if rmErr == nil {
			removed = append(removed, t)
			continue
		}
		if !errors.Is(rmErr, os.ErrNotExist) {
			return removed, fmt.Errorf("remove %s: %w", t, rmErr)
		}
	}
	return removed, nil
}

// writeFileAtomic is the temp-file-then-rename rewrite used for every
// store mutation, so a crashed stage never leaves a torn file behind.
func writeFileAtomic(path string, b []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
