// Package apperr classifies failures surfaced to clients into the kinds
// the Literature server's error taxonomy defines, rather than distinct Go
// error types. A single Error carries a Kind plus a human-readable message;
// callers that need to branch on the kind use KindOf.
package apperr

import "fmt"

// Kind classifies a failure the way the dispatcher reports it to clients.
// These are kinds, not types: every failure that reaches a Session Consumer
// carries exactly one.
type Kind string

const (
	// InvalidArgument marks malformed input: missing token, missing fields,
	// an unknown action type, an unknown card id.
	InvalidArgument Kind = "INVALID_ARGUMENT"
	// NotFound marks a room or player id that does not resolve.
	NotFound Kind = "NOT_FOUND"
	// RuleViolation marks a well-formed action that breaks a game rule.
	RuleViolation Kind = "RULE_VIOLATION"
	// IllegalState marks an action inappropriate for the current game state.
	IllegalState Kind = "ILLEGAL_STATE"
	// PreconditionFailed marks start_game called with the wrong roster.
	PreconditionFailed Kind = "PRECONDITION_FAILED"
)

// Error is the concrete error type every package in this module returns
// for a classified failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New constructs a classified error from a kind and a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err, defaulting to InvalidArgument for any
// error this package did not classify (a programmer error elsewhere, not
// something a client caused, but still safe to surface as a 4xx-equivalent).
func KindOf(err error) Kind {
	var classified *Error
	if e, ok := err.(*Error); ok {
		classified = e
	}
	if classified == nil {
		return InvalidArgument
	}
	return classified.Kind
}
