// Package errs defines the failure kinds shared by the discovery and
// reconciliation packages. Every error returned by those packages wraps
// exactly one of these sentinels, so callers classify with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: no matching path, iteration or artifact.
	ErrNotFound = errors.New("not found")
	// ErrShape: inconsistent row/column counts in a table.
	ErrShape = errors.New("shape mismatch")
	// ErrParse: malformed iteration marker, manifest or record payload.
	ErrParse = errors.New("parse error")
	// ErrReconciliation: resolved companion filename missing, or run index out of range.
	ErrReconciliation = errors.New("reconciliation failed")
	// ErrLoad: underlying artifact missing or unreadable.
	ErrLoad = errors.New("load failed")
)

// NotFound wraps ErrNotFound with a formatted message.
func NotFound(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

// Shape wraps ErrShape with a formatted message.
func Shape(format string, args ...any) error {
	return wrap(ErrShape, format, args...)
}

// Parse wraps ErrParse with a formatted message.
func Parse(format string, args ...any) error {
	return wrap(ErrParse, format, args...)
}

// Reconciliation wraps ErrReconciliation with a formatted message.
func Reconciliation(format string, args ...any) error {
	return wrap(ErrReconciliation, format, args...)
}

// Load wraps ErrLoad with a formatted message. A non-nil cause is kept in
// the chain alongside ErrLoad unless it already carries one of the kinds
// above; then only its text is kept, so the result has exactly one kind.
func Load(cause error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	switch {
	case cause == nil:
		return fmt.Errorf("%w: %s", ErrLoad, msg)
	case hasKind(cause):
		return fmt.Errorf("%w: %s: %v", ErrLoad, msg, cause)
	default:
		return fmt.Errorf("%w: %s: %w", ErrLoad, msg, cause)
	}
}

func hasKind(err error) bool {
	for _, k := range []error{ErrNotFound, ErrShape, ErrParse, ErrReconciliation, ErrLoad} {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
