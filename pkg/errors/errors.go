// Package errors provides common domain error types for chatpulse.
//
// This package defines sentinel errors for conditions that callers need to
// distinguish, such as a transcript with no recognisable messages. Using typed
// errors enables consistent handling with errors.Is() checks.
//
// Usage:
//
//	import chaterrors "github.com/otherjamesbrown/chatpulse/pkg/errors"
//
//	if chaterrors.IsNoMessages(err) {
//	    // tell the user the export format was not recognised
//	}
package errors

import "errors"

// Domain errors - common sentinel errors for domain conditions.
var (
	// ErrNoMessages indicates the transcript contained no timestamp headers.
	ErrNoMessages = errors.New("no messages found")

	// ErrValidation indicates invalid input or configuration.
	ErrValidation = errors.New("validation error")

	// ErrUnsupportedSource indicates a transcript container that cannot be read.
	ErrUnsupportedSource = errors.New("unsupported transcript source")

	// ErrAnalyticFailed indicates a single analytic could not produce a result.
	ErrAnalyticFailed = errors.New("analytic failed")

	// ErrUnknownAuthor indicates the requested author does not appear in the timeline.
	ErrUnknownAuthor = errors.New("unknown author")
)

// IsNoMessages reports whether any error in err's chain is ErrNoMessages.
func IsNoMessages(err error) bool {
	return errors.Is(err, ErrNoMessages)
}

// IsValidation reports whether any error in err's chain is ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnsupportedSource reports whether any error in err's chain is ErrUnsupportedSource.
func IsUnsupportedSource(err error) bool {
	return errors.Is(err, ErrUnsupportedSource)
}

// IsAnalyticFailed reports whether any error in err's chain is ErrAnalyticFailed.
func IsAnalyticFailed(err error) bool {
	return errors.Is(err, ErrAnalyticFailed)
}

// IsUnknownAuthor reports whether any error in err's chain is ErrUnknownAuthor.
func IsUnknownAuthor(err error) bool {
	return errors.Is(err, ErrUnknownAuthor)
}
