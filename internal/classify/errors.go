package classify

import (
	"errors"
	"fmt"
)

// ErrNotApplication is the classifier's explicit "no match" signal: the
// email is real but is not about a job application. Callers skip the
// message and still mark it processed.
var ErrNotApplication = errors.New("not a job application")

// AuthError is fatal for the whole stage; retrying per message would only
// hammer the service with a bad credential.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return fmt.Sprintf("classifier auth: %v", e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

// TransientError covers rate limits, 5xx responses and network failures.
// Worth retrying within the per-message budget.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return fmt.Sprintf("classifier transient: %v", e.Err) }
func (e *TransientError) Unwrap() error { return e.Err }

// MalformedError means the service answered but the payload did not fit
// the contract. The message's record is discarded, never half-written.
type MalformedError struct {
	Reason string
	Raw    string
}

func (e *MalformedError) Error() string { return "malformed classifier response: " + e.Reason }
