package management

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced by a Service
type ErrorKind int

const (
	// KindQuery means the request could not be built from its parameters
	KindQuery ErrorKind = iota + 1
	// KindAPI means the remote call failed or returned a non-success status
	KindAPI
	// KindCredential means the stored credentials were revoked or expired
	KindCredential
)

func (k ErrorKind) String() string {
	switch k {
	case KindQuery:
		return "query"
	case KindAPI:
		return "api"
	case KindCredential:
		return "credential"
	default:
		return "unknown"
	}
}

// Error is returned by Service implementations for every failed call
type Error struct {
	Kind   ErrorKind
	Op     string // e.g. "list webproperties"
	Status int    // HTTP status, 0 when no response was received
	Reason string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindAPI:
		if e.Status != 0 {
			return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Reason)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Op, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) (ErrorKind, bool) {
	var merr *Error
	if errors.As(err, &merr) {
		return merr.Kind, true
	}
	return 0, false
}

// Diagnostic renders the single line shown to the user for a classified
// error. ok is false for errors that carry no kind.
func Diagnostic(err error) (msg string, ok bool) {
	var merr *Error
	if !errors.As(err, &merr) {
		return "", false
	}

	switch merr.Kind {
	case KindQuery:
		return fmt.Sprintf("There was an error in constructing your query : %v", merr), true
	case KindAPI:
		return fmt.Sprintf("Arg, there was an API error : %d : %s", merr.Status, merr.Reason), true
	case KindCredential:
		return "The credentials have been revoked or expired, please re-run the application to re-authorize", true
	}
	return "", false
}
