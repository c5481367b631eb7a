// Package bumperr defines the error taxonomy the bump engine reports
// across its public contract, grounded on the original tag-track
// implementation's error.rs ErrorKind enum.
package bumperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error per spec.md §7.
type Kind int

const (
	// ConfigError covers invalid regex, missing required capture groups,
	// and unknown bump kinds. Fatal at engine construction.
	ConfigError Kind = iota
	// InputError covers an unresolvable or missing target commit. Fatal.
	InputError
	// MissingBaseline means a configured scope has no reachable matching
	// tag. Fatal for the run; populates the report's error field.
	MissingBaseline
	// SourceTransient covers retryable network/IO failures from the Source.
	SourceTransient
	// SourceFatal covers permission, not-found, and authentication
	// failures from the Source.
	SourceFatal
	// TagConflict means a tag by that name already exists.
	TagConflict
	// IncompleteHistory means a Source's commit stream ended before
	// reaching the expected head commit (e.g. a paginated API truncated
	// early); the engine refuses to report zero bumps in that case.
	IncompleteHistory
)

func (k Kind) String() string {
	switch k {
	case ConfigError:
		return "config_error"
	case InputError:
		return "input_error"
	case MissingBaseline:
		return "missing_baseline"
	case SourceTransient:
		return "source_transient"
	case SourceFatal:
		return "source_fatal"
	case TagConflict:
		return "tag_conflict"
	case IncompleteHistory:
		return "incomplete_history"
	default:
		return "unknown"
	}
}

// Error is a typed error carrying a Kind alongside the wrapped cause.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

// New creates an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given kind that wraps an existing error.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...), err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.err
}

// Is reports whether err is a bumperr.Error of the given kind.
func Is(err error, kind Kind) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}
