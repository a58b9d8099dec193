package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an operation failure so callers can decide
// whether to abort, degrade, or retry.
type ErrorKind string

const (
	KindConfig   ErrorKind = "config"   // bad or missing configuration, fatal at startup
	KindProvider ErrorKind = "provider" // embedding or LLM provider failure
	KindStore    ErrorKind = "store"    // storage backend failure
	KindInput    ErrorKind = "input"    // malformed caller input
)

// Error is the failure variant returned at operation boundaries.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E wraps err as a classified operation error.
func E(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the kind from an error chain. Unclassified errors
// report as provider failures, the most common boundary.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindProvider
}
