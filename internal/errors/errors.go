// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure an invocation can hit maps to exactly one category, so callers
// and tests can branch on the Kind without string matching. An invocation either
// fully succeeds or fails at the first failing step; nothing is retried.
package errors

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// ConfigMissing indicates a required setting (API key, base URL) is absent.
	ConfigMissing Kind = "config_missing"
	// CompletionFailed indicates the completion service call failed
	// (network, auth, malformed or empty response).
	CompletionFailed Kind = "completion_failed"
	// NoSQLFound indicates the completion text contained no fenced code block.
	NoSQLFound Kind = "no_sql_found"
	// ExecutionFailed indicates the database rejected or failed the statement.
	ExecutionFailed Kind = "execution_failed"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the Kind carried by err, or "" if err has none.
func KindOf(err error) Kind {
	var e *E
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }
