// Package pipeline drives the five stages in order. Control flow is
// strictly linear: one stage at a time, stop at the first failure.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Stage is one step of the pipeline. Code is the process exit code the
// driver propagates when this stage fails.
type Stage struct {
	Name string
	Code int
	Run  func(ctx context.Context) error
}

// StageError wraps a stage failure with its exit code.
type StageError struct {
	Stage string
	Code  int
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// Run executes the stages sequentially, gated on success.
func Run(ctx context.Context, stages []Stage) error {
	start := time.Now()
	log.Printf("[pipeline] starting %d stages", len(stages))

	for i, s := range stages {
		if err := ctx.Err(); err != nil {
			return &StageError{Stage: s.Name, Code: s.Code, Err: err}
		}

		stepStart := time.Now()
		log.Printf("[pipeline] step %d/%d: %s", i+1, len(stages), s.Name)

		if err := s.Run(ctx); err != nil {
			log.Printf("[pipeline] step %d/%d: %s FAILED after %s: %v",
				i+1, len(stages), s.Name, time.Since(stepStart).Round(time.Millisecond), err)
			return &StageError{Stage: s.Name, Code: s.Code, Err: err}
		}
		log.Printf("[pipeline] step %d/%d: %s ok (%s)",
			i+1, len(stages), s.Name, time.Since(stepStart).Round(time.Millisecond))
	}

	log.Printf("[pipeline] completed in %s", time.Since(start).Round(time.Millisecond))
	return nil
}
